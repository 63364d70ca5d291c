package api

import (
	"context"
	"fmt"
)

// ListShops returns a page of storefronts.
func (c *Client) ListShops(ctx context.Context, params ListParams) (*Collection[Shop], error) {
	var out Collection[Shop]
	if err := c.get(ctx, "/api/admin/shops", listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetShop returns one shop by id.
func (c *Client) GetShop(ctx context.Context, id string) (*Shop, error) {
	var out Shop
	if err := c.get(ctx, fmt.Sprintf("/api/admin/shops/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockShop takes a shop offline.
func (c *Client) BlockShop(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/shops/%s/block", id), nil, nil)
}

// UnblockShop puts a blocked shop back online.
func (c *Client) UnblockShop(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/shops/%s/unblock", id), nil, nil)
}
