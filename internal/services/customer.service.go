package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbenedict/customer-orders/internal/model"
)

// ErrInvalidInput marks a request rejected before any storage access.
var ErrInvalidInput = errors.New("invalid input")

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
}

type CustomerService struct {
	customerRepo CustomerRepository
}

func NewCustomerService(customerRepo CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c := &model.Customer{
		CustomerCode: p.CustomerCode,
		Name:         p.Name,
		Telephone:    p.Telephone,
		Location:     p.Location,
	}

	return s.customerRepo.Create(ctx, c)
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}
