package service

import (
	"context"
	"time"

	"product-store/internal/models"
	"product-store/internal/rating"
	"product-store/internal/store"
	"product-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product lookup and rating aggregation
type ProductService struct {
	store  CatalogStore
	cache  EntityCache
	events EventSink
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store CatalogStore, cache EntityCache, events EventSink) *ProductService {
	return &ProductService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// FindAll retrieves all products
func (s *ProductService) FindAll(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

// FindByNameContaining retrieves products by name fragment
func (s *ProductService) FindByNameContaining(ctx context.Context, fragment string) ([]models.Product, error) {
	return s.store.SearchProductsByName(ctx, fragment)
}

// FindByID retrieves a product, read-through cached
func (s *ProductService) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.FindByID")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
		} else if cached != nil {
			util.CacheHitsTotal.WithLabelValues("product").Inc()
			return cached, nil
		}
		util.CacheMissesTotal.WithLabelValues("product").Inc()
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			s.logger.Warn("Product cache write failed", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

// StoresOf retrieves the stores associated with a product. The product
// must exist; an empty association list is not an error.
func (s *ProductService) StoresOf(ctx context.Context, productID int64) ([]models.Store, error) {
	if _, err := s.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.store.GetStoresOfProduct(ctx, productID)
}

// StoreOf retrieves one associated store of a product, used for the buy
// confirmation endpoint.
func (s *ProductService) StoreOf(ctx context.Context, productID, storeID int64) (*models.Store, error) {
	return s.store.GetStoreOfProduct(ctx, productID, storeID)
}

// Rate folds one rating into a product's running average. A missing
// product is bootstrapped by its first rating rather than rejected.
func (s *ProductService) Rate(ctx context.Context, productID int64, r float64) (*store.RatingResult, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Rate")
	defer span.End()

	if err := rating.Validate(r); err != nil {
		util.RatingsRejectedTotal.WithLabelValues("product").Inc()
		return nil, err
	}

	start := time.Now()
	result, err := s.store.RateProductTx(ctx, productID, r)
	util.RatingFoldLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	util.RatingsSubmittedTotal.WithLabelValues("product").Inc()
	if result.Created {
		util.RatingEntitiesCreatedTotal.WithLabelValues("product").Inc()
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
			s.logger.Warn("Product cache invalidation failed",
				zap.Int64("product_id", productID), zap.Error(err))
		}
	}

	s.logger.Info("Product rated",
		zap.Int64("product_id", productID),
		zap.Float64("rating", r),
		zap.Float64("new_avg", result.Average),
		zap.Int64("count", result.Count),
		zap.Bool("created", result.Created))

	if s.events != nil {
		event := &models.ProductRatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductRated,
				Timestamp: time.Now(),
			},
			ProductID: productID,
			Rating:    r,
			NewAvg:    result.Average,
			Count:     result.Count,
			Created:   result.Created,
		}
		if err := s.events.PublishProductRated(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductRated event", zap.Error(err))
		}
	}

	return result, nil
}
