package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"product-store/internal/models"
	"product-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer registration and lookup
type CustomerService struct {
	store  CatalogStore
	events EventSink
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store CatalogStore, events EventSink) *CustomerService {
	return &CustomerService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// RegisterRequest carries the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// FindAll retrieves all customers
func (s *CustomerService) FindAll(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

// FindByEmail looks up a customer by a URL-encoded email parameter.
// A parameter that fails to decode is treated as no match, not as an
// internal error.
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.FindByEmail")
	defer span.End()

	decoded, err := url.QueryUnescape(email)
	if err != nil {
		s.logger.Warn("Failed to decode email parameter",
			zap.String("email", email),
			zap.Error(err))
		return nil, fmt.Errorf("%w: undecodable email parameter", models.ErrNotFound)
	}

	return s.store.GetCustomerByEmail(ctx, decoded)
}

// Register creates a new customer with the default role and active flag
func (s *CustomerService) Register(ctx context.Context, req *RegisterRequest) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.Register")
	defer span.End()

	customer := &models.Customer{
		Name:     req.Name,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     models.RoleCustomer,
		Active:   true,
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	util.CustomersRegisteredTotal.Inc()
	s.logger.Info("Customer registered",
		zap.Int64("customer_id", customer.ID),
		zap.String("email", customer.Email))

	if s.events != nil {
		event := &models.CustomerRegisteredEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCustomerRegistered,
				Timestamp: time.Now(),
			},
			CustomerID: customer.ID,
			Email:      customer.Email,
		}
		if err := s.events.PublishCustomerRegistered(ctx, event); err != nil {
			s.logger.Error("Failed to publish CustomerRegistered event", zap.Error(err))
		}
	}

	return customer, nil
}
