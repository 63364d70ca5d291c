package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/api"
	"github.com/shopforge/shopctl/internal/service"
)

// pageFilter is the plain paging filter used by collections with no
// resource-specific filters.
type pageFilter struct {
	Page  int
	Limit int
}

func addPageFlags(cmd *cobra.Command, page, limit *int) {
	cmd.Flags().IntVar(page, "page", 1, "page number")
	cmd.Flags().IntVar(limit, "limit", 20, "page size")
}

var sellersCmd = &cobra.Command{
	Use:   "sellers",
	Short: "Manage approved sellers",
}

var sellersPage, sellersLimit int

var sellersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sellers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("sellers"); err != nil {
			return err
		}
		b := newSellerBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: sellersPage, Limit: sellersLimit}); err != nil {
			return friendly(err)
		}
		renderSellers(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var sellersProfileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Show one seller's full profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("sellers"); err != nil {
			return err
		}
		p, err := a.client.GetSellerProfile(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:      %s\n", p.ID)
		fmt.Fprintf(out, "Email:   %s\n", p.Email)
		fmt.Fprintf(out, "Name:    %s\n", p.FullName)
		fmt.Fprintf(out, "Shop:    %s\n", p.ShopName)
		fmt.Fprintf(out, "Status:  %s\n", p.Status)
		fmt.Fprintf(out, "Phone:   %s\n", p.Phone)
		fmt.Fprintf(out, "Address: %s\n", p.Address)
		fmt.Fprintf(out, "Joined:  %s\n", fmtTime(p.CreatedAt))
		return nil
	},
}

var sellersBlockCmd = &cobra.Command{
	Use:   "block <id>",
	Short: "Block a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSellerMutation(cmd, args[0], "Block seller %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.BlockSeller(ctx, args[0]) }
		})
	},
}

var sellersUnblockCmd = &cobra.Command{
	Use:   "unblock <id>",
	Short: "Unblock a seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSellerMutation(cmd, args[0], "Unblock seller %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.UnblockSeller(ctx, args[0]) }
		})
	},
}

func init() {
	addPageFlags(sellersListCmd, &sellersPage, &sellersLimit)
	sellersCmd.AddCommand(sellersListCmd, sellersProfileCmd, sellersBlockCmd, sellersUnblockCmd)
	rootCmd.AddCommand(sellersCmd)
}

func newSellerBrowser(a *app) *service.Browser[api.Seller, pageFilter] {
	return service.NewBrowser(func(ctx context.Context, f pageFilter) (*api.Collection[api.Seller], error) {
		return a.client.ListSellers(ctx, api.ListParams{Page: f.Page, Limit: f.Limit})
	}, a.logger)
}

// runSellerMutation loads the seller list, runs the confirmed action through
// the browser so the collection is reloaded from the server afterwards, and
// renders the refreshed rows.
func runSellerMutation(cmd *cobra.Command, id, promptFmt string, action func(*app) func(context.Context) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireAdmin("sellers"); err != nil {
		return err
	}
	b := newSellerBrowser(a)
	defer b.Close()
	if err := b.SetFilter(cmd.Context(), pageFilter{Page: 1, Limit: 20}); err != nil {
		return friendly(err)
	}
	err = b.Mutate(cmd.Context(), confirm(cmd, fmt.Sprintf(promptFmt, id)), action(a))
	if errors.Is(err, service.ErrDeclined) {
		fmt.Fprintln(cmd.OutOrStdout(), "aborted")
		return nil
	}
	if err != nil {
		return friendly(err)
	}
	renderSellers(cmd.OutOrStdout(), b.Items(), b.Paging())
	return nil
}

func renderSellers(w io.Writer, sellers []api.Seller, paging api.Paging) {
	rows := make([][]any, 0, len(sellers))
	for _, s := range sellers {
		rows = append(rows, []any{s.ID, s.Email, s.FullName, s.ShopName, s.Status, fmtTime(s.CreatedAt)})
	}
	table(w, []string{"ID", "EMAIL", "NAME", "SHOP", "STATUS", "JOINED"}, rows)
	printPaging(w, paging)
}
