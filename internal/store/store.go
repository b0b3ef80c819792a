package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"product-store/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests
func NewStoreWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// ListProducts retrieves all products
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProductsByName retrieves products whose name contains the fragment
func (s *Store) SearchProductsByName(ctx context.Context, fragment string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id", fragment)
	return products, err
}

// GetStoresOfProduct retrieves all stores associated with a product
func (s *Store) GetStoresOfProduct(ctx context.Context, productID int64) ([]models.Store, error) {
	var stores []models.Store
	err := s.db.SelectContext(ctx, &stores, `
		SELECT s.* FROM stores s
		JOIN product_stores ps ON ps.store_id = s.id
		WHERE ps.product_id = $1
		ORDER BY s.id`, productID)
	return stores, err
}

// GetStoreOfProduct retrieves one associated store of a product
func (s *Store) GetStoreOfProduct(ctx context.Context, productID, storeID int64) (*models.Store, error) {
	var store models.Store
	err := s.db.GetContext(ctx, &store, `
		SELECT s.* FROM stores s
		JOIN product_stores ps ON ps.store_id = s.id
		WHERE ps.product_id = $1 AND s.id = $2`, productID, storeID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: store %d for product %d", models.ErrNotFound, storeID, productID)
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateProduct creates a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, company, price, stock, rating, rating_count, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Company, product.Price, product.Stock,
		product.Rating, product.RatingCount, product.Tags)
}

// AssociateProductStore links a product to a store
func (s *Store) AssociateProductStore(ctx context.Context, productID, storeID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO product_stores (product_id, store_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		productID, storeID)
	return err
}
