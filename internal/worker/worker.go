package worker

import (
	"context"
	"log"

	"product-store/internal/broker"
	"product-store/internal/models"
	"product-store/internal/util"

	"go.uber.org/zap"
)

// EntityCache is the invalidation surface the worker needs, satisfied by
// redisclient.Client.
type EntityCache interface {
	InvalidateProduct(ctx context.Context, id int64) error
	InvalidateStore(ctx context.Context, id int64) error
}

// CatalogWorker consumes catalog events and drops cached entities that
// other replicas may still hold, so every instance converges after a
// rating or an order lands.
type CatalogWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	cache        EntityCache
	logger       *zap.Logger
}

// NewCatalogWorker creates a new catalog worker
func NewCatalogWorker(consumer *broker.Consumer, cache EntityCache) *CatalogWorker {
	w := &CatalogWorker{
		consumer: consumer,
		cache:    cache,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnProductRated(w.handleProductRated)
	eventHandler.OnStoreRated(w.handleStoreRated)
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *CatalogWorker) Start(ctx context.Context) error {
	log.Println("Starting catalog worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CatalogWorker) Stop() error {
	log.Println("Stopping catalog worker...")
	return w.consumer.Close()
}

func (w *CatalogWorker) handleProductRated(ctx context.Context, event *models.ProductRatedEvent) error {
	w.logger.Info("Invalidating cached product after rating",
		zap.Int64("product_id", event.ProductID),
		zap.String("event_id", event.EventID))
	return w.cache.InvalidateProduct(ctx, event.ProductID)
}

func (w *CatalogWorker) handleStoreRated(ctx context.Context, event *models.StoreRatedEvent) error {
	w.logger.Info("Invalidating cached store after rating",
		zap.Int64("store_id", event.StoreID),
		zap.String("event_id", event.EventID))
	return w.cache.InvalidateStore(ctx, event.StoreID)
}

func (w *CatalogWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	w.logger.Info("Order event consumed",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("product_id", event.ProductID))
	// stock is snapshotted, not decremented, so only the product entry
	// needs refreshing
	return w.cache.InvalidateProduct(ctx, event.ProductID)
}
