package api

import (
	"context"
	"fmt"
)

// ListUsers returns a page of user accounts, optionally filtered by a
// keyword over name and email. An empty keyword is sent as-is; the server
// treats it as "no filter".
func (c *Client) ListUsers(ctx context.Context, keyword string, params ListParams) (*Collection[Account], error) {
	q := listQuery(params)
	q.Set("keyword", keyword)

	var out Collection[Account]
	if err := c.get(ctx, "/api/admin/users", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserProfile returns one account's full profile.
func (c *Client) GetUserProfile(ctx context.Context, id string) (*Account, error) {
	var out Account
	if err := c.get(ctx, fmt.Sprintf("/api/admin/users/%s/profile", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockUser suspends a user account.
func (c *Client) BlockUser(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/users/%s/block", id), nil, nil)
}

// UnblockUser lifts a user suspension.
func (c *Client) UnblockUser(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/users/%s/unblock", id), nil, nil)
}
