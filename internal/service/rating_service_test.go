package service

import (
	"context"
	"errors"
	"testing"

	"product-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRatingSequenceIsArithmeticMean(t *testing.T) {
	fs := newFakeStore()
	fs.stores[7] = &models.Store{ID: 7, Name: "king store"}
	svc := NewStoreService(fs, nil, nil)

	ratings := []float64{4, 4, 5, 2.5, 3}
	var sum float64
	for _, r := range ratings {
		_, err := svc.Rate(context.Background(), 7, r)
		require.NoError(t, err)
		sum += r
	}

	st := fs.stores[7]
	assert.InDelta(t, sum/float64(len(ratings)), st.Rating, 1e-9)
	assert.Equal(t, int64(len(ratings)), st.RatingCount)
}

func TestStoreRatingBootstrapsMissingStore(t *testing.T) {
	fs := newFakeStore()
	svc := NewStoreService(fs, nil, nil)

	res, err := svc.Rate(context.Background(), 42, 4.5)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, 4.5, res.Average)
	assert.Equal(t, int64(1), res.Count)

	st := fs.stores[42]
	require.NotNil(t, st)
	assert.Equal(t, "", st.Name)
	assert.Equal(t, 4.5, st.Rating)
}

func TestProductRatingBootstrapsMissingProduct(t *testing.T) {
	fs := newFakeStore()
	svc := NewProductService(fs, nil, nil)

	res, err := svc.Rate(context.Background(), 99, 4.5)
	require.NoError(t, err)

	assert.True(t, res.Created)
	p := fs.products[99]
	require.NotNil(t, p)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, int64(1), p.RatingCount)
	assert.Equal(t, "", p.Name)
	assert.Zero(t, p.Price)
}

func TestRatingOutOfRangeIsRejected(t *testing.T) {
	fs := newFakeStore()
	fs.products[1] = &models.Product{ID: 1, Rating: 4.0, RatingCount: 2}
	products := NewProductService(fs, nil, nil)
	stores := NewStoreService(fs, nil, nil)

	for _, r := range []float64{-1, 5.5} {
		_, err := products.Rate(context.Background(), 1, r)
		assert.True(t, errors.Is(err, models.ErrValidation))

		_, err = stores.Rate(context.Background(), 1, r)
		assert.True(t, errors.Is(err, models.ErrValidation))
	}

	// entity untouched
	assert.Equal(t, 4.0, fs.products[1].Rating)
	assert.Equal(t, int64(2), fs.products[1].RatingCount)
	assert.Empty(t, fs.stores)
}

func TestCustomerFindByEmailDecodesParameter(t *testing.T) {
	fs := newFakeStore()
	fs.customers["john.doe@example.com"] = &models.Customer{ID: 1, Email: "john.doe@example.com"}
	svc := NewCustomerService(fs, nil)

	c, err := svc.FindByEmail(context.Background(), "john.doe%40example.com")
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", c.Email)
}

func TestCustomerFindByEmailUndecodableIsNotFound(t *testing.T) {
	fs := newFakeStore()
	svc := NewCustomerService(fs, nil)

	_, err := svc.FindByEmail(context.Background(), "%zz")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestRegisterAssignsDefaults(t *testing.T) {
	fs := newFakeStore()
	svc := NewCustomerService(fs, nil)

	c, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "raj",
		Password: "secret",
		Email:    "raj@example.com",
		Phone:    "99499",
		Address:  "bangalore",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, c.Role)
	assert.True(t, c.Active)
	assert.NotZero(t, c.ID)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Name: "raj2", Password: "x", Email: "raj@example.com",
	})
	assert.True(t, errors.Is(err, models.ErrConflict))
}
