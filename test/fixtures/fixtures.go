package fixtures

import (
	"time"

	"github.com/kbenedict/customer-orders/internal/model"
)

var (
	TestCustomerNairobi = model.Customer{
		CustomerCode: "CUST001",
		Name:         "John Doe",
		Telephone:    "+254701234567",
		Location:     "Nairobi",
	}

	TestCustomerMombasa = model.Customer{
		CustomerCode: "CUST002",
		Name:         "Jane Smith",
		Telephone:    "+254712345678",
		Location:     "Mombasa",
	}
)

func NewTestCustomerCreateRequest(code, name, telephone, location string) model.CustomerCreateRequest {
	return model.CustomerCreateRequest{
		CustomerCode: code,
		Name:         name,
		Telephone:    telephone,
		Location:     location,
	}
}

func NewTestOrderCreateRequest(telephone, item string, amount float64) model.OrderCreateRequest {
	return model.OrderCreateRequest{
		Telephone: telephone,
		Item:      item,
		Amount:    &amount,
	}
}

func NewTestOrder(telephone, item string, amount float64) *model.Order {
	return &model.Order{
		Telephone: telephone,
		Item:      item,
		Amount:    amount,
		OrderTime: time.Now().UTC(),
	}
}

var ValidTelephones = []string{
	"+254701234567",
	"+254712345678",
	"0712345678",
	"254723456789",
}

var InvalidTelephones = []string{
	"",
	"12345",
	"not-a-number",
	"+2547012345678901234",
}
