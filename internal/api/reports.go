package api

import (
	"context"
	"fmt"
)

// ListReports returns a page of user complaints.
func (c *Client) ListReports(ctx context.Context, params ListParams) (*Collection[Report], error) {
	var out Collection[Report]
	if err := c.get(ctx, "/api/admin/reports", listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReport returns one complaint in full.
func (c *Client) GetReport(ctx context.Context, id string) (*ReportDetail, error) {
	var out ReportDetail
	if err := c.get(ctx, fmt.Sprintf("/api/admin/reports/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
