package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog product. Rating and RatingCount together
// form the running-average accumulator for the product.
type Product struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Company     string         `db:"company" json:"company"`
	Price       float64        `db:"price" json:"price"`
	Stock       int            `db:"stock" json:"stock"`
	Rating      float64        `db:"rating" json:"rating"`
	RatingCount int64          `db:"rating_count" json:"rating_count"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Store represents a store selling products
type Store struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Phone       string    `db:"phone" json:"phone"`
	City        string    `db:"city" json:"city"`
	Rating      float64   `db:"rating" json:"rating"`
	RatingCount int64     `db:"rating_count" json:"rating_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Customer represents a registered customer. Email is the natural key
// used for lookup and is unique at the schema level.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Role      string    `db:"role" json:"role"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Order is a denormalized purchase record: product, store and customer
// fields are copied at placement time and never updated afterwards.
type Order struct {
	ID           int64     `db:"id" json:"id"`
	CustomerID   int64     `db:"customer_id" json:"customer_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	Company      string    `db:"company" json:"company"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Price        float64   `db:"price" json:"price"`
	StoreName    string    `db:"store_name" json:"store_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Default role assigned on registration
const RoleCustomer = "ROLE_CUSTOMER"
