package store

import (
	"context"

	"product-store/internal/models"
)

// CreateOrder creates a new order
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (customer_id, product_name, company, customer_name, price, store_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, order, query,
		order.CustomerID, order.ProductName, order.Company,
		order.CustomerName, order.Price, order.StoreName)
}

// ListOrders retrieves all orders
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// SearchOrdersByProductName retrieves orders whose product name contains
// the fragment
func (s *Store) SearchOrdersByProductName(ctx context.Context, fragment string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE product_name ILIKE '%' || $1 || '%' ORDER BY created_at DESC", fragment)
	return orders, err
}

// SearchOrdersByCustomerName retrieves orders whose customer name contains
// the fragment
func (s *Store) SearchOrdersByCustomerName(ctx context.Context, fragment string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE customer_name ILIKE '%' || $1 || '%' ORDER BY created_at DESC", fragment)
	return orders, err
}

// GetOrdersByCustomerID retrieves orders owned by a customer
func (s *Store) GetOrdersByCustomerID(ctx context.Context, customerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return orders, err
}
