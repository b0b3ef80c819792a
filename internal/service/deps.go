package service

import (
	"context"

	"product-store/internal/models"
	"product-store/internal/store"
)

// CatalogStore is the slice of the persistence layer the services need.
// *store.Store satisfies it; tests substitute fakes.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	SearchProductsByName(ctx context.Context, fragment string) ([]models.Product, error)
	GetStoresOfProduct(ctx context.Context, productID int64) ([]models.Store, error)
	GetStoreOfProduct(ctx context.Context, productID, storeID int64) (*models.Store, error)
	RateProductTx(ctx context.Context, productID int64, r float64) (*store.RatingResult, error)

	ListStores(ctx context.Context) ([]models.Store, error)
	GetStoreByID(ctx context.Context, id int64) (*models.Store, error)
	RateStoreTx(ctx context.Context, storeID int64, r float64) (*store.RatingResult, error)

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	SearchOrdersByProductName(ctx context.Context, fragment string) ([]models.Order, error)
	SearchOrdersByCustomerName(ctx context.Context, fragment string) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
}

// EntityCache is the read-cache surface, satisfied by redisclient.Client.
// A nil cache disables caching.
type EntityCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	InvalidateProduct(ctx context.Context, id int64) error
	GetStore(ctx context.Context, id int64) (*models.Store, error)
	SetStore(ctx context.Context, store *models.Store) error
	InvalidateStore(ctx context.Context, id int64) error
}

// EventSink is the publishing surface, satisfied by broker.EventPublisher.
// A nil sink disables publishing.
type EventSink interface {
	PublishCustomerRegistered(ctx context.Context, event *models.CustomerRegisteredEvent) error
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishProductRated(ctx context.Context, event *models.ProductRatedEvent) error
	PublishStoreRated(ctx context.Context, event *models.StoreRatedEvent) error
}
