package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound signals the order's telephone resolves to no
	// customer row (foreign-key violation at insertion time).
	ErrCustomerNotFound = errors.New("customer not found for telephone")
)

type OrderRepository struct {
	*pg.DB
}

func NewOrderRepository(db *pg.DB) *OrderRepository {
	return &OrderRepository{
		db,
	}
}

// Create inserts an order. A zero OrderTime is stamped with the moment
// of insertion.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	entity := toOrderEntity(o)
	if entity.OrderTime.IsZero() {
		entity.OrderTime = time.Now().UTC()
	}

	if err := r.Session(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toOrderModel(entity), nil
}

// List returns every order in storage-defined order.
func (r *OrderRepository) List(ctx context.Context) ([]*model.Order, error) {
	var entities []*OrderEntity
	if err := r.Session(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return toOrderModels(entities), nil
}
