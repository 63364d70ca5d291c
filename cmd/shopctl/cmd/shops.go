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

var shopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "Manage storefronts",
}

var shopsPage, shopsLimit int

var shopsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shops",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("shops"); err != nil {
			return err
		}
		b := newShopBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: shopsPage, Limit: shopsLimit}); err != nil {
			return friendly(err)
		}
		renderShops(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var shopsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("shops"); err != nil {
			return err
		}
		s, err := a.client.GetShop(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:      %s\n", s.ID)
		fmt.Fprintf(out, "Name:    %s\n", s.Name)
		fmt.Fprintf(out, "Owner:   %s (%s)\n", s.OwnerName, s.OwnerID)
		fmt.Fprintf(out, "Status:  %s\n", s.Status)
		fmt.Fprintf(out, "Created: %s\n", fmtTime(s.CreatedAt))
		return nil
	},
}

var shopsBlockCmd = &cobra.Command{
	Use:   "block <id>",
	Short: "Block a shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShopMutation(cmd, args[0], "Block shop %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.BlockShop(ctx, args[0]) }
		})
	},
}

var shopsUnblockCmd = &cobra.Command{
	Use:   "unblock <id>",
	Short: "Unblock a shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShopMutation(cmd, args[0], "Unblock shop %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.UnblockShop(ctx, args[0]) }
		})
	},
}

func init() {
	addPageFlags(shopsListCmd, &shopsPage, &shopsLimit)
	shopsCmd.AddCommand(shopsListCmd, shopsShowCmd, shopsBlockCmd, shopsUnblockCmd)
	rootCmd.AddCommand(shopsCmd)
}

func newShopBrowser(a *app) *service.Browser[api.Shop, pageFilter] {
	return service.NewBrowser(func(ctx context.Context, f pageFilter) (*api.Collection[api.Shop], error) {
		return a.client.ListShops(ctx, api.ListParams{Page: f.Page, Limit: f.Limit})
	}, a.logger)
}

func runShopMutation(cmd *cobra.Command, id, promptFmt string, action func(*app) func(context.Context) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireAdmin("shops"); err != nil {
		return err
	}
	b := newShopBrowser(a)
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
	renderShops(cmd.OutOrStdout(), b.Items(), b.Paging())
	return nil
}

func renderShops(w io.Writer, shops []api.Shop, paging api.Paging) {
	rows := make([][]any, 0, len(shops))
	for _, s := range shops {
		rows = append(rows, []any{s.ID, s.Name, s.OwnerName, s.Status, fmtTime(s.CreatedAt)})
	}
	table(w, []string{"ID", "NAME", "OWNER", "STATUS", "CREATED"}, rows)
	printPaging(w, paging)
}
