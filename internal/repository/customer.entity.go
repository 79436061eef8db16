package repository

import (
	"github.com/kbenedict/customer-orders/internal/model"
)

type CustomerEntity struct {
	CustomerID   int64  `db:"customer_id"   gorm:"primaryKey;autoIncrement;column:customer_id"`
	CustomerCode string `db:"customer_code" gorm:"column:customer_code;not null;unique"`
	Name         string `db:"name"          gorm:"column:name;not null"`
	Telephone    string `db:"telephone"     gorm:"column:telephone;not null;unique"`
	Location     string `db:"location"      gorm:"column:location"`

	// Orders hang off the unique telephone; deleting a customer removes
	// its orders.
	Orders []OrderEntity `gorm:"foreignKey:Telephone;references:Telephone;constraint:OnDelete:CASCADE"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		CustomerID:   m.CustomerID,
		CustomerCode: m.CustomerCode,
		Name:         m.Name,
		Telephone:    m.Telephone,
		Location:     m.Location,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		CustomerID:   e.CustomerID,
		CustomerCode: e.CustomerCode,
		Name:         e.Name,
		Telephone:    e.Telephone,
		Location:     e.Location,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
