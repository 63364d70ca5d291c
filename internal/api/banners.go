package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ListBanners returns a page of promotional banners.
// The API exposes no banner-by-id GET; callers needing one banner list and
// locate it client-side.
func (c *Client) ListBanners(ctx context.Context, params ListParams) (*Collection[Banner], error) {
	var out Collection[Banner]
	if err := c.get(ctx, "/api/admin/banners", listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBanner creates a banner and returns the server's record.
func (c *Client) CreateBanner(ctx context.Context, input BannerInput) (*Banner, error) {
	var out Banner
	if err := c.post(ctx, "/api/admin/banners", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBanner replaces a banner's fields and returns the updated record.
func (c *Client) UpdateBanner(ctx context.Context, id string, input BannerInput) (*Banner, error) {
	var out Banner
	if err := c.put(ctx, fmt.Sprintf("/api/admin/banners/%s", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBanner removes a banner.
func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/banners/%s", id))
}

// UploadImage sends one image as a multipart request and returns the URL the
// server stored it under. This is a distinct call from the banner submit;
// the caller merges the URL into the in-progress form before saving.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read image content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	var result UploadResult
	err = c.roundTrip(ctx, http.MethodPost, "/api/upload/image", nil, mw.FormDataContentType(), &buf, &result)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}
