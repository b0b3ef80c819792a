package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"product-store/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	invalidatedProducts []int64
	invalidatedStores   []int64
}

func (f *fakeCache) InvalidateProduct(_ context.Context, id int64) error {
	f.invalidatedProducts = append(f.invalidatedProducts, id)
	return nil
}

func (f *fakeCache) InvalidateStore(_ context.Context, id int64) error {
	f.invalidatedStores = append(f.invalidatedStores, id)
	return nil
}

func eventMessage(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: payload}
}

func TestProductRatedEventInvalidatesProduct(t *testing.T) {
	fc := &fakeCache{}
	w := NewCatalogWorker(nil, fc)

	msg := eventMessage(t, &models.ProductRatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeProductRated,
			Timestamp: time.Now(),
		},
		ProductID: 7,
		Rating:    5.0,
		NewAvg:    4.3,
		Count:     3,
	})

	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))
	assert.Equal(t, []int64{7}, fc.invalidatedProducts)
	assert.Empty(t, fc.invalidatedStores)
}

func TestStoreRatedEventInvalidatesStore(t *testing.T) {
	fc := &fakeCache{}
	w := NewCatalogWorker(nil, fc)

	msg := eventMessage(t, &models.StoreRatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-2",
			EventType: models.EventTypeStoreRated,
			Timestamp: time.Now(),
		},
		StoreID: 9,
		Rating:  4.0,
	})

	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))
	assert.Equal(t, []int64{9}, fc.invalidatedStores)
	assert.Empty(t, fc.invalidatedProducts)
}

func TestOrderPlacedEventInvalidatesProduct(t *testing.T) {
	fc := &fakeCache{}
	w := NewCatalogWorker(nil, fc)

	msg := eventMessage(t, &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-3",
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:   5,
		ProductID: 7,
	})

	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))
	assert.Equal(t, []int64{7}, fc.invalidatedProducts)
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	fc := &fakeCache{}
	w := NewCatalogWorker(nil, fc)

	msg := eventMessage(t, &models.BaseEvent{
		EventID:   "evt-4",
		EventType: "SOMETHING_ELSE",
		Timestamp: time.Now(),
	})

	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))
	assert.Empty(t, fc.invalidatedProducts)
	assert.Empty(t, fc.invalidatedStores)
}
