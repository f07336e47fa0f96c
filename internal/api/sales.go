package api

import (
	"context"
	"net/http"

	"github.com/me/invdash/pkg/model"
)

// ListSales returns all recorded sales, newest first.
func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := c.Do(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// RecordSale registers a sale of quantity units of the given product.
func (c *Client) RecordSale(ctx context.Context, productID, quantity int) error {
	payload := map[string]int{"product_id": productID, "quantity": quantity}
	return c.Do(ctx, http.MethodPost, "/make_sale", payload, nil)
}

// SalesSummary returns the headline revenue numbers.
func (c *Client) SalesSummary(ctx context.Context) (model.SalesSummary, error) {
	var out model.SalesSummary
	if err := c.Do(ctx, http.MethodGet, "/sales/total", nil, &out); err != nil {
		return model.SalesSummary{}, err
	}
	return out, nil
}

// SalesByCategory returns the per-category sales breakdown.
func (c *Client) SalesByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var out []model.CategoryCount
	if err := c.Do(ctx, http.MethodGet, "/sales/count-by-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
