package model

import "time"

// Product is a catalog entry as returned by the backend.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Image         string  `json:"image,omitempty"`
}

// Sale is a recorded sale as returned by the backend.
type Sale struct {
	ID          int       `json:"id"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	PriceAtSale float64   `json:"price_at_sale"`
	TotalPrice  float64   `json:"total_price"`
	Timestamp   time.Time `json:"timestamp"`
}

// CategoryCount is one bucket of a per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SalesSummary aggregates the dashboard headline numbers.
type SalesSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalSales   int     `json:"total_sales"`
}
