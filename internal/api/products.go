package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/me/invdash/pkg/model"
)

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.Do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) error {
	return c.Do(ctx, http.MethodPost, "/add_product", p, nil)
}

// UpdateProduct replaces the catalog entry with the given id.
func (c *Client) UpdateProduct(ctx context.Context, p model.Product) error {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), p, nil)
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// CountProducts returns the total number of catalog entries.
func (c *Client) CountProducts(ctx context.Context) (int, error) {
	var out struct {
		Total int `json:"total_products"`
	}
	if err := c.Do(ctx, http.MethodGet, "/products/count-total", nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// CountProductsByCategory returns the per-category product breakdown.
func (c *Client) CountProductsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var out []model.CategoryCount
	if err := c.Do(ctx, http.MethodGet, "/products/count-by-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
