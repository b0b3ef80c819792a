package service

import (
	"context"
	"net/url"
	"time"

	"product-store/internal/models"
	"product-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order placement and lookup
type OrderService struct {
	store  CatalogStore
	events EventSink
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store CatalogStore, events EventSink) *OrderService {
	return &OrderService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// FindAll retrieves all orders
func (s *OrderService) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

// FindByProductNameContaining retrieves orders by product name fragment
func (s *OrderService) FindByProductNameContaining(ctx context.Context, fragment string) ([]models.Order, error) {
	return s.store.SearchOrdersByProductName(ctx, fragment)
}

// FindByCustomerNameContaining retrieves orders by customer name fragment
func (s *OrderService) FindByCustomerNameContaining(ctx context.Context, fragment string) ([]models.Order, error) {
	return s.store.SearchOrdersByCustomerName(ctx, fragment)
}

// PlaceOrder creates an order for a product from a store on behalf of the
// customer identified by email. Product, store and customer fields are
// snapshotted into the order at placement time; later renames never touch
// past orders. Any missing party aborts the placement with not-found and
// nothing is written. There is no idempotency key: a duplicate request
// places a duplicate order.
func (s *OrderService) PlaceOrder(ctx context.Context, productID, storeID int64, email string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
		return nil, err
	}

	st, err := s.store.GetStoreByID(ctx, storeID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_not_found").Inc()
		return nil, err
	}

	decoded, decErr := url.QueryUnescape(email)
	if decErr != nil {
		decoded = email
	}
	customer, err := s.store.GetCustomerByEmail(ctx, decoded)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("customer_not_found").Inc()
		return nil, err
	}

	order := &models.Order{
		CustomerID:   customer.ID,
		ProductName:  product.Name,
		Company:      product.Company,
		CustomerName: customer.Name,
		Price:        product.Price,
		StoreName:    st.Name,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
		zap.String("product", product.Name),
		zap.String("store", st.Name))

	if s.events != nil {
		event := &models.OrderPlacedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPlaced,
				Timestamp: time.Now(),
			},
			OrderID:     order.ID,
			CustomerID:  customer.ID,
			ProductID:   productID,
			StoreID:     storeID,
			ProductName: product.Name,
			Price:       product.Price,
		}
		if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		}
	}

	return order, nil
}
