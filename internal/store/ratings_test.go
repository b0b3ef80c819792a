package store

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStoreWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRateStoreTxFoldsExistingRating(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating, rating_count FROM stores WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "rating_count"}).AddRow(4.0, 2))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE stores SET rating = $1, rating_count = $2 WHERE id = $3")).
		WithArgs(sqlmock.AnyArg(), int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := s.RateStoreTx(context.Background(), 7, 5.0)
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.InDelta(t, 4.333333, res.Average, 1e-6)
	assert.Equal(t, int64(3), res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateStoreTxBootstrapsMissingStore(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating, rating_count FROM stores WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "rating_count"}))
	mock.ExpectExec("INSERT INTO stores").
		WithArgs(int64(99), 4.5, int64(1)).
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectCommit()

	res, err := s.RateStoreTx(context.Background(), 99, 4.5)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, 4.5, res.Average)
	assert.Equal(t, int64(1), res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateProductTxBootstrapsMissingProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating, rating_count FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "rating_count"}))
	mock.ExpectExec("INSERT INTO products").
		WithArgs(int64(99), 4.5, int64(1)).
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectCommit()

	res, err := s.RateProductTx(context.Background(), 99, 4.5)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, 4.5, res.Average)
	assert.Equal(t, int64(1), res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateProductTxRollsBackOnUpdateError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating, rating_count FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "rating_count"}).AddRow(3.0, 4))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE products SET rating = $1, rating_count = $2 WHERE id = $3")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := s.RateProductTx(context.Background(), 1, 2.0)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
