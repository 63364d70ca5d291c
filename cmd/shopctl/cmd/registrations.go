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

// registrationFilter pages through registrations of one review status.
type registrationFilter struct {
	Status string
	Page   int
	Limit  int
}

var registrationsCmd = &cobra.Command{
	Use:     "registrations",
	Aliases: []string{"regs"},
	Short:   "Review pending seller registrations",
}

var regsStatus string
var regsPage, regsLimit int
var regsRejectReason string

var regsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registrations by review status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("registrations"); err != nil {
			return err
		}
		b := newRegistrationBrowser(a)
		defer b.Close()
		f := registrationFilter{Status: regsStatus, Page: regsPage, Limit: regsLimit}
		if err := b.SetFilter(cmd.Context(), f); err != nil {
			return friendly(err)
		}
		renderRegistrations(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var regsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("registrations"); err != nil {
			return err
		}
		b := newRegistrationBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), registrationFilter{Status: "pending", Page: 1, Limit: 20}); err != nil {
			return friendly(err)
		}
		err = b.Mutate(cmd.Context(), confirm(cmd, fmt.Sprintf("Approve registration %s?", args[0])), func(ctx context.Context) error {
			return a.client.ApproveRegistration(ctx, args[0])
		})
		if errors.Is(err, service.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
		if err != nil {
			return friendly(err)
		}
		renderRegistrations(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var regsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a registration with a reason",
	Long: `Reject a seller registration.

A non-empty reason is mandatory; it is stored with the registration and
shown to the applicant. Pass it with --reason or enter it at the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("registrations"); err != nil {
			return err
		}

		form := service.RejectRegistrationForm{RegistrationID: args[0], Reason: regsRejectReason}
		if !form.CanSubmit() {
			if form.Reason, err = promptLine(cmd, "rejection reason"); err != nil {
				return err
			}
		}
		if !form.CanSubmit() {
			return service.ErrReasonRequired
		}

		b := newRegistrationBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), registrationFilter{Status: "pending", Page: 1, Limit: 20}); err != nil {
			return friendly(err)
		}
		err = b.Mutate(cmd.Context(), confirm(cmd, fmt.Sprintf("Reject registration %s?", args[0])), func(ctx context.Context) error {
			return form.Submit(ctx, a.client)
		})
		if errors.Is(err, service.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
		if err != nil {
			return friendly(err)
		}
		renderRegistrations(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

func init() {
	regsListCmd.Flags().StringVar(&regsStatus, "status", "pending", "review status (pending, approved, rejected)")
	addPageFlags(regsListCmd, &regsPage, &regsLimit)
	regsRejectCmd.Flags().StringVar(&regsRejectReason, "reason", "", "rejection reason (required, prompted if omitted)")
	registrationsCmd.AddCommand(regsListCmd, regsApproveCmd, regsRejectCmd)
	rootCmd.AddCommand(registrationsCmd)
}

func newRegistrationBrowser(a *app) *service.Browser[api.Registration, registrationFilter] {
	return service.NewBrowser(func(ctx context.Context, f registrationFilter) (*api.Collection[api.Registration], error) {
		return a.client.ListRegistrationsByStatus(ctx, f.Status, api.ListParams{Page: f.Page, Limit: f.Limit})
	}, a.logger)
}

func renderRegistrations(w io.Writer, regs []api.Registration, paging api.Paging) {
	rows := make([][]any, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, []any{r.ID, r.Email, r.FullName, r.ShopName, r.Status, fmtTime(r.SubmittedAt)})
	}
	table(w, []string{"ID", "EMAIL", "NAME", "SHOP", "STATUS", "SUBMITTED"}, rows)
	printPaging(w, paging)
}
