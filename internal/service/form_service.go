package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shopforge/shopctl/internal/api"
)

// Form errors.
var (
	// ErrReasonRequired gates the rejection form until a non-whitespace
	// reason is entered.
	ErrReasonRequired = errors.New("a rejection reason is required")

	// ErrBannerNotFound is returned when an edit form cannot locate its id.
	ErrBannerNotFound = errors.New("banner not found")
)

// formValidator checks presence of required fields. Format and semantic
// validation stay on the server; its messages are surfaced verbatim.
var formValidator = validator.New(validator.WithRequiredStructEnabled())

// validateRequired runs struct-tag validation and converts failures into
// one actionable message.
func validateRequired(v any) error {
	err := formValidator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing []string
		for _, e := range verrs {
			missing = append(missing, strings.ToLower(e.Field()))
		}
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return err
}

// ParseDateTime canonicalizes a user-entered date/time into UTC. Accepted
// inputs: full RFC 3339, "2006-01-02 15:04", "2006-01-02T15:04", or a bare
// date (midnight UTC).
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time %q (want e.g. 2006-01-02 15:04)", s)
}

// BannerAPI is the slice of the API client the banner form needs.
type BannerAPI interface {
	ListBanners(ctx context.Context, params api.ListParams) (*api.Collection[api.Banner], error)
	CreateBanner(ctx context.Context, input api.BannerInput) (*api.Banner, error)
	UpdateBanner(ctx context.Context, id string, input api.BannerInput) (*api.Banner, error)
	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

// BannerForm is the create/edit form for a promotional banner. An empty ID
// means create; a set ID means update. Only presence is validated locally —
// in particular, StartAt after EndAt is submitted as-is and the server's
// verdict comes back to the user unchanged.
type BannerForm struct {
	ID       string
	Title    string    `validate:"required"`
	ImageURL string    `validate:"required"`
	LinkURL  string    `validate:"-"`
	Position string    `validate:"required"`
	StartAt  time.Time `validate:"required"`
	EndAt    time.Time `validate:"required"`

	// ImagePath optionally names a local file to upload before submit; the
	// returned URL is merged into ImageURL, replacing whatever was there.
	ImagePath string `validate:"-"`
}

// LoadBanner populates an edit form by listing banners and locating the id.
// The API has no banner-by-id GET, so the list is walked page by page.
func LoadBanner(ctx context.Context, client BannerAPI, id string) (*BannerForm, error) {
	params := api.ListParams{Page: 1, Limit: 100}
	for {
		col, err := client.ListBanners(ctx, params)
		if err != nil {
			return nil, err
		}
		for _, b := range col.Items {
			if b.ID == id {
				return &BannerForm{
					ID:       b.ID,
					Title:    b.Title,
					ImageURL: b.ImageURL,
					LinkURL:  b.LinkURL,
					Position: b.Position,
					StartAt:  b.StartAt,
					EndAt:    b.EndAt,
				}, nil
			}
		}
		if len(col.Items) == 0 || params.Page >= col.Paging.TotalPages {
			return nil, ErrBannerNotFound
		}
		params.Page++
	}
}

// Submit uploads the image (when a local path is set), validates required
// fields, and creates or updates depending on whether the form has an id.
func (f *BannerForm) Submit(ctx context.Context, client BannerAPI) (*api.Banner, error) {
	if f.ImagePath != "" {
		file, err := os.Open(f.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		url, upErr := client.UploadImage(ctx, filepath.Base(f.ImagePath), file)
		_ = file.Close()
		if upErr != nil {
			return nil, upErr
		}
		f.ImageURL = url
	}

	if err := validateRequired(f); err != nil {
		return nil, err
	}

	input := api.BannerInput{
		Title:    f.Title,
		ImageURL: f.ImageURL,
		LinkURL:  f.LinkURL,
		Position: f.Position,
		StartAt:  f.StartAt.UTC(),
		EndAt:    f.EndAt.UTC(),
	}

	if f.ID == "" {
		return client.CreateBanner(ctx, input)
	}
	return client.UpdateBanner(ctx, f.ID, input)
}

// RegistrationAPI is the slice of the API client the rejection form needs.
type RegistrationAPI interface {
	RejectRegistration(ctx context.Context, id, reason string) error
}

// RejectRegistrationForm gates the registration rejection behind a reason.
type RejectRegistrationForm struct {
	RegistrationID string
	Reason         string
}

// CanSubmit reports whether the form may be submitted: the reason must
// contain something other than whitespace.
func (f *RejectRegistrationForm) CanSubmit() bool {
	return strings.TrimSpace(f.Reason) != ""
}

// Submit rejects the registration. Refuses to fire while CanSubmit is false.
func (f *RejectRegistrationForm) Submit(ctx context.Context, client RegistrationAPI) error {
	if !f.CanSubmit() {
		return ErrReasonRequired
	}
	return client.RejectRegistration(ctx, f.RegistrationID, f.Reason)
}
