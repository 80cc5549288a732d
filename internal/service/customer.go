package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logging"
)

type customerRepo interface {
	Create(ctx context.Context, customer domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
}

type CustomerService struct {
	customers customerRepo
}

func NewCustomerService(customers customerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error) {
	customer := domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("CreateCustomer: %w", err)
	}

	logging.FromContext(ctx).Info("customer created", "customer_id", customer.ID)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("GetCustomer: %w", err)
	}
	return c, nil
}
