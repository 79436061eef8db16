package model

import (
	"errors"
	"time"
)

var (
	ErrItemRequired   = errors.New("item is required")
	ErrAmountRequired = errors.New("amount is required")
	ErrAmountNegative = errors.New("amount must be >= 0")
)

// Order references its customer by telephone. The telephone column
// carries a cascade-delete foreign key to customers.
type Order struct {
	OrderID   int64     `json:"order_id"   db:"order_id"   gorm:"primaryKey;autoIncrement;column:order_id"`
	Telephone string    `json:"telephone"  db:"telephone"  gorm:"column:telephone;not null"`
	Item      string    `json:"item"       db:"item"       gorm:"column:item;not null"`
	Amount    float64   `json:"amount"     db:"amount"     gorm:"column:amount;not null;check:amount >= 0"`
	OrderTime time.Time `json:"order_time" db:"order_time" gorm:"column:order_time"`
}

func (Order) TableName() string { return "orders" }

// OrderCreateRequest is the input for recording an order. Amount is a
// pointer so an absent field is distinguishable from an explicit zero.
// OrderTime is optional; the repository stamps insertion time when it
// is absent.
type OrderCreateRequest struct {
	Telephone string     `json:"telephone"`
	Item      string     `json:"item"`
	Amount    *float64   `json:"amount"`
	OrderTime *time.Time `json:"order_time"`
}

func (p OrderCreateRequest) Validate() error {
	if p.Telephone == "" {
		return ErrTelephoneRequired
	}
	if !telephoneRe.MatchString(p.Telephone) {
		return ErrTelephoneInvalid
	}
	if p.Item == "" {
		return ErrItemRequired
	}
	if p.Amount == nil {
		return ErrAmountRequired
	}
	if *p.Amount < 0 {
		return ErrAmountNegative
	}
	return nil
}
