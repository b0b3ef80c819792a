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

// StoreService handles store lookup and rating aggregation
type StoreService struct {
	store  CatalogStore
	cache  EntityCache
	events EventSink
	logger *zap.Logger
}

// NewStoreService creates a new store service
func NewStoreService(store CatalogStore, cache EntityCache, events EventSink) *StoreService {
	return &StoreService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// FindAll retrieves all stores
func (s *StoreService) FindAll(ctx context.Context) ([]models.Store, error) {
	return s.store.ListStores(ctx)
}

// FindByID retrieves a store, read-through cached
func (s *StoreService) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	ctx, span := util.StartSpan(ctx, "StoreService.FindByID")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetStore(ctx, id)
		if err != nil {
			s.logger.Warn("Store cache read failed", zap.Int64("store_id", id), zap.Error(err))
		} else if cached != nil {
			util.CacheHitsTotal.WithLabelValues("store").Inc()
			return cached, nil
		}
		util.CacheMissesTotal.WithLabelValues("store").Inc()
	}

	st, err := s.store.GetStoreByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStore(ctx, st); err != nil {
			s.logger.Warn("Store cache write failed", zap.Int64("store_id", id), zap.Error(err))
		}
	}
	return st, nil
}

// Rate folds one rating into a store's running average, bootstrapping a
// missing store with rating = r, count = 1.
func (s *StoreService) Rate(ctx context.Context, storeID int64, r float64) (*store.RatingResult, error) {
	ctx, span := util.StartSpan(ctx, "StoreService.Rate")
	defer span.End()

	if err := rating.Validate(r); err != nil {
		util.RatingsRejectedTotal.WithLabelValues("store").Inc()
		return nil, err
	}

	start := time.Now()
	result, err := s.store.RateStoreTx(ctx, storeID, r)
	util.RatingFoldLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	util.RatingsSubmittedTotal.WithLabelValues("store").Inc()
	if result.Created {
		util.RatingEntitiesCreatedTotal.WithLabelValues("store").Inc()
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStore(ctx, storeID); err != nil {
			s.logger.Warn("Store cache invalidation failed",
				zap.Int64("store_id", storeID), zap.Error(err))
		}
	}

	s.logger.Info("Store rated",
		zap.Int64("store_id", storeID),
		zap.Float64("rating", r),
		zap.Float64("new_avg", result.Average),
		zap.Int64("count", result.Count),
		zap.Bool("created", result.Created))

	if s.events != nil {
		event := &models.StoreRatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeStoreRated,
				Timestamp: time.Now(),
			},
			StoreID: storeID,
			Rating:  r,
			NewAvg:  result.Average,
			Count:   result.Count,
			Created: result.Created,
		}
		if err := s.events.PublishStoreRated(ctx, event); err != nil {
			s.logger.Error("Failed to publish StoreRated event", zap.Error(err))
		}
	}

	return result, nil
}
