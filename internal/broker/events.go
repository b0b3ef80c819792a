package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"product-store/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCustomerRegistered publishes CustomerRegistered event
func (ep *EventPublisher) PublishCustomerRegistered(ctx context.Context, event *models.CustomerRegisteredEvent) error {
	key := fmt.Sprintf("customer-%d", event.CustomerID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderPlaced publishes OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductRated publishes ProductRated event
func (ep *EventPublisher) PublishProductRated(ctx context.Context, event *models.ProductRatedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishStoreRated publishes StoreRated event
func (ep *EventPublisher) PublishStoreRated(ctx context.Context, event *models.StoreRatedEvent) error {
	key := fmt.Sprintf("store-%d", event.StoreID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes consumed catalog events to registered callbacks
type EventHandler struct {
	onProductRated func(context.Context, *models.ProductRatedEvent) error
	onStoreRated   func(context.Context, *models.StoreRatedEvent) error
	onOrderPlaced  func(context.Context, *models.OrderPlacedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnProductRated registers a handler for ProductRated events
func (eh *EventHandler) OnProductRated(handler func(context.Context, *models.ProductRatedEvent) error) {
	eh.onProductRated = handler
}

// OnStoreRated registers a handler for StoreRated events
func (eh *EventHandler) OnStoreRated(handler func(context.Context, *models.StoreRatedEvent) error) {
	eh.onStoreRated = handler
}

// OnOrderPlaced registers a handler for OrderPlaced events
func (eh *EventHandler) OnOrderPlaced(handler func(context.Context, *models.OrderPlacedEvent) error) {
	eh.onOrderPlaced = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeProductRated:
		if eh.onProductRated != nil {
			var event models.ProductRatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductRated event: %w", err)
			}
			return eh.onProductRated(ctx, &event)
		}

	case models.EventTypeStoreRated:
		if eh.onStoreRated != nil {
			var event models.StoreRatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal StoreRated event: %w", err)
			}
			return eh.onStoreRated(ctx, &event)
		}

	case models.EventTypeOrderPlaced:
		if eh.onOrderPlaced != nil {
			var event models.OrderPlacedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderPlaced event: %w", err)
			}
			return eh.onOrderPlaced(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
