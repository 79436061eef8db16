package repository

import (
	"context"
	"errors"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCustomerCodeExists signals the conflict-do-nothing insert matched
	// an existing customer_code and created nothing.
	ErrCustomerCodeExists = errors.New("customer code already exists")
	// ErrDuplicateTelephone surfaces the telephone uniqueness constraint.
	ErrDuplicateTelephone = errors.New("telephone already exists")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// Create inserts with "do nothing on conflicting customer_code". A
// duplicate code is detected by the absence of an affected row, not by a
// driver error. A duplicate telephone still trips the storage uniqueness
// constraint and is returned as ErrDuplicateTelephone.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	result := r.Session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_code"}},
			DoNothing: true,
		}).
		Create(entity)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTelephone
		}
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrCustomerCodeExists
	}

	return toCustomerModel(entity), nil
}

// List returns every customer in storage-defined order.
func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	if err := r.Session(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

// Delete removes a customer by telephone; dependent orders go with it
// via the cascade constraint.
func (r *CustomerRepository) Delete(ctx context.Context, telephone string) error {
	return r.Session(ctx).Where("telephone = ?", telephone).Delete(&CustomerEntity{}).Error
}
