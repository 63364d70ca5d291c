package api

import (
	"context"
	"fmt"
)

// rejectRequest carries the mandatory reason for a registration rejection.
type rejectRequest struct {
	RejectReason string `json:"rejectReason"`
}

// ListRegistrationsByStatus returns seller registrations in the given review
// status (typically "pending").
func (c *Client) ListRegistrationsByStatus(ctx context.Context, status string, params ListParams) (*Collection[Registration], error) {
	q := listQuery(params)
	q.Set("status", status)

	var out Collection[Registration]
	if err := c.get(ctx, "/api/admin/seller-registrations/by-status", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveRegistration accepts a seller registration.
func (c *Client) ApproveRegistration(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/seller-registrations/%s/approve", id), nil, nil)
}

// RejectRegistration declines a seller registration with a reason. The
// reason requirement is enforced at the form layer; the call itself just
// forwards whatever it is given.
func (c *Client) RejectRegistration(ctx context.Context, id, reason string) error {
	path := fmt.Sprintf("/api/admin/seller-registrations/%s/reject", id)
	return c.post(ctx, path, rejectRequest{RejectReason: reason}, nil)
}
