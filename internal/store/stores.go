package store

import (
	"context"
	"database/sql"
	"fmt"

	"product-store/internal/models"
)

// ListStores retrieves all stores
func (s *Store) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := s.db.SelectContext(ctx, &stores, "SELECT * FROM stores ORDER BY id")
	return stores, err
}

// GetStoreByID retrieves a store by ID
func (s *Store) GetStoreByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	err := s.db.GetContext(ctx, &store, "SELECT * FROM stores WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: store %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateStore creates a new store
func (s *Store) CreateStore(ctx context.Context, store *models.Store) error {
	query := `
		INSERT INTO stores (name, phone, city, rating, rating_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, store, query,
		store.Name, store.Phone, store.City, store.Rating, store.RatingCount)
}
