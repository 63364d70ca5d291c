package api

import (
	"context"
	"net/url"
)

// GetGMVStatistics returns gross merchandise value buckets for a period
// grouping ("day", "week", "month").
func (c *Client) GetGMVStatistics(ctx context.Context, period string) (*GMVStatistics, error) {
	q := url.Values{}
	q.Set("period", period)

	var out GMVStatistics
	if err := c.get(ctx, "/api/admin/revenue/gmv-statistics", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRevenueByShop returns the paged per-shop revenue breakdown.
func (c *Client) GetRevenueByShop(ctx context.Context, params ListParams) (*Collection[ShopRevenue], error) {
	var out Collection[ShopRevenue]
	if err := c.get(ctx, "/api/admin/revenue/by-shop", listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
