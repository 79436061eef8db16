package model

import (
	"errors"
	"regexp"
)

// telephoneRe accepts an optional leading + followed by 10 to 15 digits.
var telephoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)

var (
	ErrCustomerCodeRequired = errors.New("customer_code is required")
	ErrNameRequired         = errors.New("name is required")
	ErrTelephoneRequired    = errors.New("telephone is required")
	ErrTelephoneInvalid     = errors.New("telephone must match ^\\+?\\d{10,15}$")
)

type Customer struct {
	CustomerID   int64  `json:"customer_id"   db:"customer_id"   gorm:"primaryKey;autoIncrement;column:customer_id"`
	CustomerCode string `json:"customer_code" db:"customer_code" gorm:"column:customer_code;not null;unique"`
	Name         string `json:"name"          db:"name"          gorm:"column:name;not null"`
	Telephone    string `json:"telephone"     db:"telephone"     gorm:"column:telephone;not null;unique"`
	Location     string `json:"location"      db:"location"      gorm:"column:location"`
}

func (Customer) TableName() string { return "customers" }

// CustomerCreateRequest is the input for registering a customer.
type CustomerCreateRequest struct {
	CustomerCode string `json:"customer_code"`
	Name         string `json:"name"`
	Telephone    string `json:"telephone"`
	Location     string `json:"location"`
}

func (p CustomerCreateRequest) Validate() error {
	if p.CustomerCode == "" {
		return ErrCustomerCodeRequired
	}
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Telephone == "" {
		return ErrTelephoneRequired
	}
	if !telephoneRe.MatchString(p.Telephone) {
		return ErrTelephoneInvalid
	}
	return nil
}
