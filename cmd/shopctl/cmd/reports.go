package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/api"
	"github.com/shopforge/shopctl/internal/service"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse user reports",
}

var reportsPage, reportsLimit int

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("reports"); err != nil {
			return err
		}
		b := service.NewBrowser(func(ctx context.Context, f pageFilter) (*api.Collection[api.Report], error) {
			return a.client.ListReports(ctx, api.ListParams{Page: f.Page, Limit: f.Limit})
		}, a.logger)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: reportsPage, Limit: reportsLimit}); err != nil {
			return friendly(err)
		}
		renderReports(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one report in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("reports"); err != nil {
			return err
		}
		r, err := a.client.GetReport(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", r.ID)
		fmt.Fprintf(out, "Reporter:    %s\n", r.ReporterID)
		fmt.Fprintf(out, "Target:      %s %s\n", r.TargetType, r.TargetID)
		fmt.Fprintf(out, "Reason:      %s\n", r.Reason)
		fmt.Fprintf(out, "Status:      %s\n", r.Status)
		fmt.Fprintf(out, "Filed:       %s\n", fmtTime(r.CreatedAt))
		fmt.Fprintf(out, "Description: %s\n", r.Description)
		return nil
	},
}

func init() {
	addPageFlags(reportsListCmd, &reportsPage, &reportsLimit)
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

func renderReports(w io.Writer, reports []api.Report, paging api.Paging) {
	rows := make([][]any, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []any{r.ID, r.TargetType, r.TargetID, r.Reason, r.Status, fmtTime(r.CreatedAt)})
	}
	table(w, []string{"ID", "TARGET TYPE", "TARGET", "REASON", "STATUS", "FILED"}, rows)
	printPaging(w, paging)
}
