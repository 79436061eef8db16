package services

import (
	"context"
	"fmt"
	"time"

	gateway "github.com/kbenedict/customer-orders/internal/gateways"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/kbenedict/customer-orders/pkg/prom"
)

type SMSSender interface {
	Send(ctx context.Context, to, message string) (*gateway.Recipient, error)
}

// NotificationService is the best-effort side channel: it formats the
// order confirmation text and hands it to the SMS transport. It never
// returns an error; a failed send is logged and counted, nothing more.
type NotificationService struct {
	sender SMSSender
}

func NewNotificationService(sender SMSSender) *NotificationService {
	return &NotificationService{sender: sender}
}

// FormatOrderMessage renders the fixed confirmation template. Amount
// always carries exactly two decimal places.
func FormatOrderMessage(item string, amount float64, orderTime time.Time) string {
	return fmt.Sprintf(
		"Dear Customer, your order has been received!\n"+
			"Item: %s\n"+
			"Amount: $%.2f\n"+
			"Time: %s\n"+
			"Thank you for your purchase!",
		item, amount, orderTime.Format("2006-01-02 15:04"),
	)
}

// OrderCreated sends the confirmation for a freshly committed order.
// Runs strictly after the insert; its outcome never reaches the caller.
func (s *NotificationService) OrderCreated(ctx context.Context, telephone, item string, amount float64, orderTime time.Time) {
	message := FormatOrderMessage(item, amount, orderTime)

	if _, err := s.sender.Send(ctx, telephone, message); err != nil {
		logger.Error("failed to send order notification", "telephone", telephone, "error", err)
		prom.IncSMSSent("failure")
		return
	}
	prom.IncSMSSent("success")
}
