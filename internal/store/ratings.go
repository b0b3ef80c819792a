package store

import (
	"context"
	"database/sql"
	"fmt"

	"product-store/internal/rating"
)

// RatingResult reports the accumulator state after a fold and whether
// the entity was bootstrapped by this rating.
type RatingResult struct {
	Average float64
	Count   int64
	Created bool
}

// RateProductTx folds a rating into a product inside a transaction
// holding a row lock, so concurrent folds on the same product serialize.
// A missing product is bootstrapped with the rating and zero values for
// every other column.
func (s *Store) RateProductTx(ctx context.Context, productID int64, r float64) (*RatingResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var acc rating.Accumulator
	err = tx.QueryRowxContext(ctx,
		"SELECT rating, rating_count FROM products WHERE id = $1 FOR UPDATE",
		productID).Scan(&acc.Average, &acc.Count)

	if err == sql.ErrNoRows {
		acc = rating.Bootstrap(r)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, company, price, stock, rating, rating_count, tags)
			VALUES ($1, '', '', 0, 0, $2, $3, '{}')`,
			productID, acc.Average, acc.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap product %d: %w", productID, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return &RatingResult{Average: acc.Average, Count: acc.Count, Created: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %d: %w", productID, err)
	}

	acc = acc.Add(r)
	_, err = tx.ExecContext(ctx,
		"UPDATE products SET rating = $1, rating_count = $2 WHERE id = $3",
		acc.Average, acc.Count, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &RatingResult{Average: acc.Average, Count: acc.Count}, nil
}

// RateStoreTx folds a rating into a store, with the same locking and
// create-on-miss behavior as RateProductTx.
func (s *Store) RateStoreTx(ctx context.Context, storeID int64, r float64) (*RatingResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var acc rating.Accumulator
	err = tx.QueryRowxContext(ctx,
		"SELECT rating, rating_count FROM stores WHERE id = $1 FOR UPDATE",
		storeID).Scan(&acc.Average, &acc.Count)

	if err == sql.ErrNoRows {
		acc = rating.Bootstrap(r)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stores (id, name, phone, city, rating, rating_count)
			VALUES ($1, '', '', '', $2, $3)`,
			storeID, acc.Average, acc.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap store %d: %w", storeID, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return &RatingResult{Average: acc.Average, Count: acc.Count, Created: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock store %d: %w", storeID, err)
	}

	acc = acc.Add(r)
	_, err = tx.ExecContext(ctx,
		"UPDATE stores SET rating = $1, rating_count = $2 WHERE id = $3",
		acc.Average, acc.Count, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to update store rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &RatingResult{Average: acc.Average, Count: acc.Count}, nil
}
