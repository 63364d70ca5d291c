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

var bannersCmd = &cobra.Command{
	Use:   "banners",
	Short: "Manage promotional banners",
}

var bannersPage, bannersLimit int

var bannerTitle, bannerImageURL, bannerImagePath, bannerLinkURL, bannerPosition string
var bannerStart, bannerEnd string

var bannersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("banners"); err != nil {
			return err
		}
		b := newBannerBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: bannersPage, Limit: bannersLimit}); err != nil {
			return friendly(err)
		}
		renderBanners(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

var bannersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a banner",
	Long: `Create a promotional banner.

The image can be given as a URL (--image-url) or uploaded from a local
file (--image); the uploaded file's URL replaces --image-url. Start and
end accept RFC 3339 or "2006-01-02 15:04" style timestamps and are sent
to the server as UTC. The server decides whether the date range is
acceptable; its verdict is reported verbatim.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("banners"); err != nil {
			return err
		}
		form := &service.BannerForm{}
		if err := fillBannerForm(cmd, form); err != nil {
			return err
		}
		banner, err := form.Submit(cmd.Context(), a.client)
		if err != nil {
			return friendly(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created banner %s\n", banner.ID)
		return nil
	},
}

var bannersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a banner",
	Long: `Update an existing banner.

The banner is looked up in the list first, so the form starts from its
current values; only the flags you pass change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("banners"); err != nil {
			return err
		}
		form, err := service.LoadBanner(cmd.Context(), a.client, args[0])
		if err != nil {
			if errors.Is(err, service.ErrBannerNotFound) {
				return fmt.Errorf("banner %s not found", args[0])
			}
			return friendly(err)
		}
		if err := fillBannerForm(cmd, form); err != nil {
			return err
		}
		banner, err := form.Submit(cmd.Context(), a.client)
		if err != nil {
			return friendly(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated banner %s\n", banner.ID)
		return nil
	},
}

var bannersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a banner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAdmin("banners"); err != nil {
			return err
		}
		b := newBannerBrowser(a)
		defer b.Close()
		if err := b.SetFilter(cmd.Context(), pageFilter{Page: 1, Limit: 20}); err != nil {
			return friendly(err)
		}
		err = b.Mutate(cmd.Context(), confirm(cmd, fmt.Sprintf("Delete banner %s?", args[0])), func(ctx context.Context) error {
			return a.client.DeleteBanner(ctx, args[0])
		})
		if errors.Is(err, service.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
		if err != nil {
			return friendly(err)
		}
		renderBanners(cmd.OutOrStdout(), b.Items(), b.Paging())
		return nil
	},
}

func init() {
	addPageFlags(bannersListCmd, &bannersPage, &bannersLimit)
	for _, c := range []*cobra.Command{bannersCreateCmd, bannersUpdateCmd} {
		c.Flags().StringVar(&bannerTitle, "title", "", "banner title")
		c.Flags().StringVar(&bannerImageURL, "image-url", "", "image URL")
		c.Flags().StringVar(&bannerImagePath, "image", "", "local image file to upload")
		c.Flags().StringVar(&bannerLinkURL, "link-url", "", "click-through URL")
		c.Flags().StringVar(&bannerPosition, "position", "", "placement slot (e.g. home_top)")
		c.Flags().StringVar(&bannerStart, "start", "", "display start time")
		c.Flags().StringVar(&bannerEnd, "end", "", "display end time")
	}
	bannersCmd.AddCommand(bannersListCmd, bannersCreateCmd, bannersUpdateCmd, bannersDeleteCmd)
	rootCmd.AddCommand(bannersCmd)
}

func newBannerBrowser(a *app) *service.Browser[api.Banner, pageFilter] {
	return service.NewBrowser(func(ctx context.Context, f pageFilter) (*api.Collection[api.Banner], error) {
		return a.client.ListBanners(ctx, api.ListParams{Page: f.Page, Limit: f.Limit})
	}, a.logger)
}

// fillBannerForm overlays the flags that were actually set onto the form.
// Unset flags leave the form field alone, so update keeps current values.
func fillBannerForm(cmd *cobra.Command, form *service.BannerForm) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title = bannerTitle
	}
	if flags.Changed("image-url") {
		form.ImageURL = bannerImageURL
	}
	if flags.Changed("image") {
		form.ImagePath = bannerImagePath
	}
	if flags.Changed("link-url") {
		form.LinkURL = bannerLinkURL
	}
	if flags.Changed("position") {
		form.Position = bannerPosition
	}
	if flags.Changed("start") {
		t, err := service.ParseDateTime(bannerStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		form.StartAt = t
	}
	if flags.Changed("end") {
		t, err := service.ParseDateTime(bannerEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		form.EndAt = t
	}
	return nil
}

func renderBanners(w io.Writer, banners []api.Banner, paging api.Paging) {
	rows := make([][]any, 0, len(banners))
	for _, b := range banners {
		rows = append(rows, []any{b.ID, b.Title, b.Position, b.Status, fmtTime(b.StartAt), fmtTime(b.EndAt)})
	}
	table(w, []string{"ID", "TITLE", "POSITION", "STATUS", "START", "END"}, rows)
	printPaging(w, paging)
}
