package models

import "time"

// Event types
const (
	EventTypeCustomerRegistered = "CUSTOMER_REGISTERED"
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeProductRated       = "PRODUCT_RATED"
	EventTypeStoreRated         = "STORE_RATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomerRegisteredEvent published when a customer registers
type CustomerRegisteredEvent struct {
	BaseEvent
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
}

// OrderPlacedEvent published when an order is placed
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     int64   `json:"order_id"`
	CustomerID  int64   `json:"customer_id"`
	ProductID   int64   `json:"product_id"`
	StoreID     int64   `json:"store_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// ProductRatedEvent published when a product rating is folded in
type ProductRatedEvent struct {
	BaseEvent
	ProductID int64   `json:"product_id"`
	Rating    float64 `json:"rating"`
	NewAvg    float64 `json:"new_avg"`
	Count     int64   `json:"count"`
	Created   bool    `json:"created"`
}

// StoreRatedEvent published when a store rating is folded in
type StoreRatedEvent struct {
	BaseEvent
	StoreID int64   `json:"store_id"`
	Rating  float64 `json:"rating"`
	NewAvg  float64 `json:"new_avg"`
	Count   int64   `json:"count"`
	Created bool    `json:"created"`
}
