package api

import (
	"context"
	"fmt"
)

// ListSellers returns a page of approved sellers.
func (c *Client) ListSellers(ctx context.Context, params ListParams) (*Collection[Seller], error) {
	var out Collection[Seller]
	if err := c.get(ctx, "/api/admin/sellers", listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSellerProfile returns one seller's full profile.
func (c *Client) GetSellerProfile(ctx context.Context, id string) (*SellerProfile, error) {
	var out SellerProfile
	path := fmt.Sprintf("/api/admin/sellers/%s/profile", id)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockSeller suspends a seller account.
func (c *Client) BlockSeller(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/sellers/%s/block", id), nil, nil)
}

// UnblockSeller lifts a seller suspension.
func (c *Client) UnblockSeller(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/sellers/%s/unblock", id), nil, nil)
}
