package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/api"
	"github.com/shopforge/shopctl/internal/service"
)

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Revenue analytics",
}

var gmvPeriod string
var revenuePage, revenueLimit int

var revenueGMVCmd = &cobra.Command{
	Use:   "gmv",
	Short: "Show gross merchandise value statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("revenue"); err != nil {
			return err
		}
		stats, err := a.client.GetGMVStatistics(cmd.Context(), gmvPeriod)
		if err != nil {
			return friendly(err)
		}
		out := cmd.OutOrStdout()
		rows := make([][]any, 0, len(stats.Points))
		for _, p := range stats.Points {
			rows = append(rows, []any{p.Period, fmt.Sprintf("%.2f", p.GMV), p.Orders})
		}
		table(out, []string{"PERIOD", "GMV", "ORDERS"}, rows)
		fmt.Fprintf(out, "\ntotal: %.2f\n", stats.Total)
		return nil
	},
}

var revenueShopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "Show the per-shop revenue breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("revenue"); err != nil {
			return err
		}
		b := service.NewBrowser(func(ctx context.Context, f pageFilter) (*api.Collection[api.ShopRevenue], error) {
			return a.client.GetRevenueByShop(ctx, api.ListParams{Page: f.Page, Limit: f.Limit})
		}, a.logger)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: revenuePage, Limit: revenueLimit}); err != nil {
			return friendly(err)
		}
		renderShopRevenue(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

func init() {
	revenueGMVCmd.Flags().StringVar(&gmvPeriod, "period", "month", "grouping period (day, week, month)")
	addPageFlags(revenueShopsCmd, &revenuePage, &revenueLimit)
	revenueCmd.AddCommand(revenueGMVCmd, revenueShopsCmd)
	rootCmd.AddCommand(revenueCmd)
}

func renderShopRevenue(w io.Writer, rows []api.ShopRevenue, paging api.Paging) {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.ShopID, r.ShopName, fmt.Sprintf("%.2f", r.Revenue), r.Orders})
	}
	table(w, []string{"SHOP ID", "NAME", "REVENUE", "ORDERS"}, out)
	printPaging(w, paging)
}
