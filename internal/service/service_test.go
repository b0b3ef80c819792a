package service

import (
	"context"
	"fmt"
	"strings"

	"product-store/internal/models"
	"product-store/internal/rating"
	"product-store/internal/store"
)

// fakeStore is an in-memory CatalogStore for service tests.
type fakeStore struct {
	products  map[int64]*models.Product
	stores    map[int64]*models.Store
	customers map[string]*models.Customer
	relations map[int64][]int64 // product -> store ids
	orders    []models.Order
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[int64]*models.Product),
		stores:    make(map[int64]*models.Store),
		customers: make(map[string]*models.Customer),
		relations: make(map[int64][]int64),
		nextID:    1,
	}
}

func (f *fakeStore) ListProducts(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	return p, nil
}

func (f *fakeStore) SearchProductsByName(_ context.Context, fragment string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStoresOfProduct(_ context.Context, productID int64) ([]models.Store, error) {
	var out []models.Store
	for _, sid := range f.relations[productID] {
		if st, ok := f.stores[sid]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStoreOfProduct(_ context.Context, productID, storeID int64) (*models.Store, error) {
	for _, sid := range f.relations[productID] {
		if sid == storeID {
			return f.stores[sid], nil
		}
	}
	return nil, fmt.Errorf("%w: store %d for product %d", models.ErrNotFound, storeID, productID)
}

func (f *fakeStore) RateProductTx(_ context.Context, productID int64, r float64) (*store.RatingResult, error) {
	p, ok := f.products[productID]
	if !ok {
		acc := rating.Bootstrap(r)
		f.products[productID] = &models.Product{ID: productID, Rating: acc.Average, RatingCount: acc.Count}
		return &store.RatingResult{Average: acc.Average, Count: acc.Count, Created: true}, nil
	}
	acc := rating.Accumulator{Average: p.Rating, Count: p.RatingCount}.Add(r)
	p.Rating, p.RatingCount = acc.Average, acc.Count
	return &store.RatingResult{Average: acc.Average, Count: acc.Count}, nil
}

func (f *fakeStore) ListStores(_ context.Context) ([]models.Store, error) {
	var out []models.Store
	for _, st := range f.stores {
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeStore) GetStoreByID(_ context.Context, id int64) (*models.Store, error) {
	st, ok := f.stores[id]
	if !ok {
		return nil, fmt.Errorf("%w: store %d", models.ErrNotFound, id)
	}
	return st, nil
}

func (f *fakeStore) RateStoreTx(_ context.Context, storeID int64, r float64) (*store.RatingResult, error) {
	st, ok := f.stores[storeID]
	if !ok {
		acc := rating.Bootstrap(r)
		f.stores[storeID] = &models.Store{ID: storeID, Rating: acc.Average, RatingCount: acc.Count}
		return &store.RatingResult{Average: acc.Average, Count: acc.Count, Created: true}, nil
	}
	acc := rating.Accumulator{Average: st.Rating, Count: st.RatingCount}.Add(r)
	st.Rating, st.RatingCount = acc.Average, acc.Count
	return &store.RatingResult{Average: acc.Average, Count: acc.Count}, nil
}

func (f *fakeStore) ListCustomers(_ context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) GetCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	c, ok := f.customers[email]
	if !ok {
		return nil, fmt.Errorf("%w: customer email %s", models.ErrNotFound, email)
	}
	return c, nil
}

func (f *fakeStore) CreateCustomer(_ context.Context, customer *models.Customer) error {
	if _, ok := f.customers[customer.Email]; ok {
		return fmt.Errorf("%w: email %s already registered", models.ErrConflict, customer.Email)
	}
	customer.ID = f.nextID
	f.nextID++
	f.customers[customer.Email] = customer
	return nil
}

func (f *fakeStore) ListOrders(_ context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeStore) SearchOrdersByProductName(_ context.Context, fragment string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if strings.Contains(strings.ToLower(o.ProductName), strings.ToLower(fragment)) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchOrdersByCustomerName(_ context.Context, fragment string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(fragment)) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	order.ID = f.nextID
	f.nextID++
	f.orders = append(f.orders, *order)
	return nil
}
