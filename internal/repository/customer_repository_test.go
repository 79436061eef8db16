package repository

import (
	"context"
	"testing"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("successful creation returns generated id", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			CustomerCode: "CUST001",
			Name:         "John Doe",
			Telephone:    "+254701234567",
			Location:     "Nairobi",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.CustomerID)
		assert.Equal(t, "CUST001", created.CustomerCode)
	})

	t.Run("duplicate customer_code creates nothing", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Customer{
			CustomerCode: "CUST001",
			Name:         "Someone Else",
			Telephone:    "+254799999999",
		})
		assert.ErrorIs(t, err, ErrCustomerCodeExists)

		customers, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, customers, 1)
	})

	t.Run("duplicate telephone trips the uniqueness constraint", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Customer{
			CustomerCode: "CUST002",
			Name:         "Jane Smith",
			Telephone:    "+254701234567",
		})
		assert.ErrorIs(t, err, ErrDuplicateTelephone)
	})

	t.Run("location may be empty", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			CustomerCode: "CUST003",
			Name:         "Alice Johnson",
			Telephone:    "+254723456789",
		})
		require.NoError(t, err)
		assert.Empty(t, created.Location)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("empty table lists nothing", func(t *testing.T) {
		customers, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, customers)
	})

	t.Run("lists all rows with server-assigned ids", func(t *testing.T) {
		for _, c := range []*model.Customer{
			{CustomerCode: "CUST001", Name: "John Doe", Telephone: "+254701234567", Location: "Nairobi"},
			{CustomerCode: "CUST002", Name: "Jane Smith", Telephone: "+254712345678", Location: "Mombasa"},
			{CustomerCode: "CUST003", Name: "Alice Johnson", Telephone: "+254723456789", Location: "Kisumu"},
		} {
			_, err := repo.Create(ctx, c)
			require.NoError(t, err)
		}

		customers, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 3)
		for _, c := range customers {
			assert.NotZero(t, c.CustomerID)
		}
	})
}

func TestCustomerRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	customerRepo := NewCustomerRepository(db)
	orderRepo := NewOrderRepository(db)
	ctx := context.Background()

	_, err := customerRepo.Create(ctx, &model.Customer{
		CustomerCode: "CUST001",
		Name:         "John Doe",
		Telephone:    "+254701234567",
	})
	require.NoError(t, err)

	_, err = orderRepo.Create(ctx, &model.Order{
		Telephone: "+254701234567",
		Item:      "Laptop",
		Amount:    1200,
	})
	require.NoError(t, err)

	t.Run("cascade removes dependent orders", func(t *testing.T) {
		err := customerRepo.Delete(ctx, "+254701234567")
		require.NoError(t, err)

		orders, err := orderRepo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}
