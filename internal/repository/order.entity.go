package repository

import (
	"time"

	"github.com/kbenedict/customer-orders/internal/model"
)

type OrderEntity struct {
	OrderID   int64     `db:"order_id"   gorm:"primaryKey;autoIncrement;column:order_id"`
	Telephone string    `db:"telephone"  gorm:"column:telephone;not null"`
	Item      string    `db:"item"       gorm:"column:item;not null"`
	Amount    float64   `db:"amount"     gorm:"column:amount;not null;check:amount >= 0"`
	OrderTime time.Time `db:"order_time" gorm:"column:order_time"`
}

func (OrderEntity) TableName() string {
	return "orders"
}

func toOrderEntity(m *model.Order) *OrderEntity {
	if m == nil {
		return nil
	}
	return &OrderEntity{
		OrderID:   m.OrderID,
		Telephone: m.Telephone,
		Item:      m.Item,
		Amount:    m.Amount,
		OrderTime: m.OrderTime,
	}
}

func toOrderModel(e *OrderEntity) *model.Order {
	if e == nil {
		return nil
	}
	return &model.Order{
		OrderID:   e.OrderID,
		Telephone: e.Telephone,
		Item:      e.Item,
		Amount:    e.Amount,
		OrderTime: e.OrderTime,
	}
}

func toOrderModels(entities []*OrderEntity) []*model.Order {
	models := make([]*model.Order, len(entities))
	for i, e := range entities {
		models[i] = toOrderModel(e)
	}
	return models
}
