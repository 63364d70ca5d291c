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

// accountFilter pages through user accounts matching a keyword. An empty
// keyword matches everyone; the parameter is still sent either way.
type accountFilter struct {
	Keyword string
	Page    int
	Limit   int
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersKeyword string
var usersPage, usersLimit int

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts, optionally filtered by keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("users"); err != nil {
			return err
		}
		b := newAccountBrowser(a)
		defer b.Close()
		f := accountFilter{Keyword: usersKeyword, Page: usersPage, Limit: usersLimit}
		if err := b.SetFilter(cmd.Context(), f); err != nil {
			return friendly(err)
		}
		renderAccounts(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var usersProfileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Show one user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("users"); err != nil {
			return err
		}
		u, err := a.client.GetUserProfile(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:      %s\n", u.ID)
		fmt.Fprintf(out, "Email:   %s\n", u.Email)
		fmt.Fprintf(out, "Name:    %s\n", u.FullName)
		fmt.Fprintf(out, "Role:    %s\n", u.Role)
		fmt.Fprintf(out, "Status:  %s\n", u.Status)
		fmt.Fprintf(out, "Joined:  %s\n", fmtTime(u.CreatedAt))
		return nil
	},
}

var usersBlockCmd = &cobra.Command{
	Use:   "block <id>",
	Short: "Block a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserMutation(cmd, args[0], "Block user %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.BlockUser(ctx, args[0]) }
		})
	},
}

var usersUnblockCmd = &cobra.Command{
	Use:   "unblock <id>",
	Short: "Unblock a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserMutation(cmd, args[0], "Unblock user %s?", func(a *app) func(context.Context) error {
			return func(ctx context.Context) error { return a.client.UnblockUser(ctx, args[0]) }
		})
	},
}

func init() {
	usersListCmd.Flags().StringVar(&usersKeyword, "keyword", "", "match against email and name")
	addPageFlags(usersListCmd, &usersPage, &usersLimit)
	usersCmd.AddCommand(usersListCmd, usersProfileCmd, usersBlockCmd, usersUnblockCmd)
	rootCmd.AddCommand(usersCmd)
}

func newAccountBrowser(a *app) *service.Browser[api.Account, accountFilter] {
	return service.NewBrowser(func(ctx context.Context, f accountFilter) (*api.Collection[api.Account], error) {
		return a.client.ListUsers(ctx, f.Keyword, api.ListParams{Page: f.Page, Limit: f.Limit})
	}, a.logger)
}

func runUserMutation(cmd *cobra.Command, id, promptFmt string, action func(*app) func(context.Context) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireAdmin("users"); err != nil {
		return err
	}
	b := newAccountBrowser(a)
	defer b.Close()
	if err := b.SetFilter(cmd.Context(), accountFilter{Page: 1, Limit: 20}); err != nil {
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
	renderAccounts(cmd.OutOrStdout(), b.Items(), b.Paging())
	return nil
}

func renderAccounts(w io.Writer, accounts []api.Account, paging api.Paging) {
	rows := make([][]any, 0, len(accounts))
	for _, u := range accounts {
		rows = append(rows, []any{u.ID, u.Email, u.FullName, u.Role, u.Status, fmtTime(u.CreatedAt)})
	}
	table(w, []string{"ID", "EMAIL", "NAME", "ROLE", "STATUS", "JOINED"}, rows)
	printPaging(w, paging)
}
