package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kbenedict/customer-orders/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
}

type OrderNotifier interface {
	OrderCreated(ctx context.Context, telephone, item string, amount float64, orderTime time.Time)
}

type OrderService struct {
	orderRepo OrderRepository
	notifier  OrderNotifier
}

func NewOrderService(orderRepo OrderRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// Create validates, inserts, then notifies. The notification runs after
// the insert has committed and cannot change the outcome.
func (s *OrderService) Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	o := &model.Order{
		Telephone: p.Telephone,
		Item:      p.Item,
		Amount:    *p.Amount,
	}
	if p.OrderTime != nil {
		o.OrderTime = *p.OrderTime
	}

	created, err := s.orderRepo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	s.notifier.OrderCreated(ctx, created.Telephone, created.Item, created.Amount, created.OrderTime)

	return created, nil
}

func (s *OrderService) List(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.List(ctx)
}
