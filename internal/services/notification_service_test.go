package services

import (
	"context"
	"errors"
	"testing"
	"time"

	gateway "github.com/kbenedict/customer-orders/internal/gateways"
	"github.com/stretchr/testify/assert"
)

type recordingSender struct {
	to      []string
	message []string
	err     error
}

func (s *recordingSender) Send(_ context.Context, to, message string) (*gateway.Recipient, error) {
	s.to = append(s.to, to)
	s.message = append(s.message, message)
	if s.err != nil {
		return nil, s.err
	}
	return &gateway.Recipient{Number: to, Status: "Success", StatusCode: 101}, nil
}

func TestFormatOrderMessage(t *testing.T) {
	orderTime := time.Date(2024, 11, 14, 13, 45, 0, 0, time.UTC)

	t.Run("full template", func(t *testing.T) {
		msg := FormatOrderMessage("Pizza Margherita", 10.99, orderTime)
		assert.Equal(t,
			"Dear Customer, your order has been received!\n"+
				"Item: Pizza Margherita\n"+
				"Amount: $10.99\n"+
				"Time: 2024-11-14 13:45\n"+
				"Thank you for your purchase!",
			msg)
	})

	t.Run("whole amount renders with two decimal places", func(t *testing.T) {
		msg := FormatOrderMessage("Laptop", 1200, orderTime)
		assert.Contains(t, msg, "Amount: $1200.00")
	})

	t.Run("excess precision rounds to two decimal places", func(t *testing.T) {
		msg := FormatOrderMessage("Laptop", 19.999, orderTime)
		assert.Contains(t, msg, "Amount: $20.00")
	})
}

func TestNotificationService_OrderCreated(t *testing.T) {
	orderTime := time.Date(2024, 11, 14, 13, 45, 0, 0, time.UTC)

	t.Run("sends exactly one message to the customer telephone", func(t *testing.T) {
		sender := &recordingSender{}
		svc := NewNotificationService(sender)

		svc.OrderCreated(context.Background(), "+254701234567", "Pizza", 20.0, orderTime)

		assert.Equal(t, []string{"+254701234567"}, sender.to)
		assert.Equal(t, []string{FormatOrderMessage("Pizza", 20.0, orderTime)}, sender.message)
	})

	t.Run("send failure is swallowed", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("gateway down")}
		svc := NewNotificationService(sender)

		assert.NotPanics(t, func() {
			svc.OrderCreated(context.Background(), "+254701234567", "Pizza", 20.0, orderTime)
		})
		assert.Len(t, sender.to, 1)
	})
}
