package seeder

import (
	"context"
	"errors"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/kbenedict/customer-orders/pkg/pg"
)

// Seeder loads a fixed batch of sample customers and orders for
// local/dev setups. Re-running it is harmless: existing customers are
// skipped on conflict and their orders are appended.
type Seeder struct {
	db        *pg.DB
	customers *repository.CustomerRepository
	orders    *repository.OrderRepository
}

func New(db *pg.DB, customers *repository.CustomerRepository, orders *repository.OrderRepository) *Seeder {
	return &Seeder{
		db:        db,
		customers: customers,
		orders:    orders,
	}
}

var sampleCustomers = []model.Customer{
	{CustomerCode: "CUST001", Name: "John Doe", Telephone: "+254701234567", Location: "Nairobi"},
	{CustomerCode: "CUST002", Name: "Jane Smith", Telephone: "+254712345678", Location: "Mombasa"},
	{CustomerCode: "CUST003", Name: "Alice Johnson", Telephone: "+254723456789", Location: "Kisumu"},
	{CustomerCode: "CUST004", Name: "Bob Brown", Telephone: "+254734567890", Location: "Eldoret"},
}

var sampleOrders = []model.Order{
	{Telephone: "+254701234567", Item: "Laptop", Amount: 1200},
	{Telephone: "+254712345678", Item: "Smartphone", Amount: 800},
	{Telephone: "+254701234567", Item: "Headphones", Amount: 150},
	{Telephone: "+254723456789", Item: "Keyboard", Amount: 100},
	{Telephone: "+254734567890", Item: "Monitor", Amount: 300},
}

// Customers inserts the sample customers, skipping codes already present.
func (s *Seeder) Customers(ctx context.Context) error {
	seeded := 0
	for _, sample := range sampleCustomers {
		customer := sample
		if _, err := s.customers.Create(ctx, &customer); err != nil {
			if errors.Is(err, repository.ErrCustomerCodeExists) ||
				errors.Is(err, repository.ErrDuplicateTelephone) {
				continue
			}
			return err
		}
		seeded++
	}
	logger.Info("seeded customers", "inserted", seeded, "skipped", len(sampleCustomers)-seeded)
	return nil
}

// Orders inserts the sample orders. Order time defaults to insertion
// time in the repository.
func (s *Seeder) Orders(ctx context.Context) error {
	for _, sample := range sampleOrders {
		order := sample
		if _, err := s.orders.Create(ctx, &order); err != nil {
			return err
		}
	}
	logger.Info("seeded orders", "inserted", len(sampleOrders))
	return nil
}

// Run seeds customers first so the telephone references resolve. The
// whole batch commits or rolls back as one transaction.
func (s *Seeder) Run(ctx context.Context) error {
	return s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Customers(ctx); err != nil {
			return err
		}
		return s.Orders(ctx)
	})
}
