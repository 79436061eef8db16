package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gateway "github.com/kbenedict/customer-orders/internal/gateways"
	"github.com/kbenedict/customer-orders/internal/handlers"
	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/internal/services"
	"github.com/kbenedict/customer-orders/pkg/pg"
	"github.com/kbenedict/customer-orders/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

type sentSMS struct {
	To      string
	From    string
	Message string
}

type TestEnvironment struct {
	DB              *pg.DB
	SMSServer       *httptest.Server
	CustomerRepo    *repository.CustomerRepository
	OrderRepo       *repository.OrderRepository
	CustomerService *services.CustomerService
	OrderService    *services.OrderService
	CustomerHandler *handlers.CustomerHandler
	OrderHandler    *handlers.OrderHandler

	mu   sync.Mutex
	sent []sentSMS
}

func (env *TestEnvironment) SentMessages() []sentSMS {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]sentSMS(nil), env.sent...)
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	dsn := fmt.Sprintf("file:e2etest%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CustomerEntity{},
		&repository.OrderEntity{},
	)
	require.NoError(t, err)

	env := &TestEnvironment{DB: pg.New(db)}

	env.SMSServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		env.mu.Lock()
		env.sent = append(env.sent, sentSMS{
			To:      r.PostForm.Get("to"),
			From:    r.PostForm.Get("from"),
			Message: r.PostForm.Get("message"),
		})
		env.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"SMSMessageData": map[string]any{
				"Message": "Sent to 1/1 Total Cost: KES 0.8000",
				"Recipients": []map[string]any{
					{"number": r.PostForm.Get("to"), "status": "Success", "statusCode": 101, "messageId": "ATXid_1", "cost": "KES 0.8000"},
				},
			},
		})
	}))
	t.Cleanup(env.SMSServer.Close)

	smsClient := gateway.NewAfricasTalkingClient(gateway.Config{
		APIURL:   env.SMSServer.URL,
		Username: "sandbox",
		APIKey:   "test-api-key",
		SenderID: "KBenedict",
		Timeout:  2 * time.Second,
	})

	env.CustomerRepo = repository.NewCustomerRepository(env.DB)
	env.OrderRepo = repository.NewOrderRepository(env.DB)

	notificationService := services.NewNotificationService(smsClient)
	env.CustomerService = services.NewCustomerService(env.CustomerRepo)
	env.OrderService = services.NewOrderService(env.OrderRepo, notificationService)

	env.CustomerHandler = handlers.NewCustomerHandler(env.CustomerService)
	env.OrderHandler = handlers.NewOrderHandler(env.OrderService)

	return env
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestE2E_CustomerAndOrderFlow(t *testing.T) {
	env := setupE2EEnvironment(t)

	// register a customer over the HTTP handler
	customerBody, _ := json.Marshal(model.CustomerCreateRequest{
		CustomerCode: "CUST001",
		Name:         "John Doe",
		Telephone:    "+254701234567",
		Location:     "Nairobi",
	})
	ctx := newRequestCtx("POST", "/customers/", customerBody)
	env.CustomerHandler.CreateCustomer(ctx)

	require.Equal(t, 201, ctx.Response.StatusCode())
	var customerResp map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &customerResp))
	assert.Equal(t, float64(1), customerResp["customer_id"])
	assert.Equal(t, "Customer created successfully", customerResp["message"])

	// then place an order for the same telephone
	orderBody, _ := json.Marshal(fixtures.NewTestOrderCreateRequest("+254701234567", "Laptop", 1200))
	ctx = newRequestCtx("POST", "/orders/", orderBody)
	env.OrderHandler.CreateOrder(ctx)

	require.Equal(t, 201, ctx.Response.StatusCode())
	var orderResp map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &orderResp))
	assert.Equal(t, float64(1), orderResp["order_id"])
	assert.Equal(t, "Order created successfully and message sent successfully", orderResp["message"])

	// exactly one SMS went out, rendered with the fixed template
	sent := env.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "+254701234567", sent[0].To)
	assert.Equal(t, "KBenedict", sent[0].From)
	assert.Contains(t, sent[0].Message, "Dear Customer, your order has been received!")
	assert.Contains(t, sent[0].Message, "Item: Laptop")
	assert.Contains(t, sent[0].Message, "Amount: $1200.00")
	assert.Contains(t, sent[0].Message, "Thank you for your purchase!")

	// both listings reflect the state
	ctx = newRequestCtx("GET", "/customers/", nil)
	env.CustomerHandler.ListCustomers(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())
	var customers []*model.Customer
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "CUST001", customers[0].CustomerCode)

	ctx = newRequestCtx("GET", "/orders/", nil)
	env.OrderHandler.ListOrders(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())
	var orders []*model.Order
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Laptop", orders[0].Item)
	assert.False(t, orders[0].OrderTime.IsZero())
}

func TestE2E_OrderForUnknownTelephone(t *testing.T) {
	env := setupE2EEnvironment(t)

	orderBody, _ := json.Marshal(fixtures.NewTestOrderCreateRequest("+254799999999", "Laptop", 1200))
	ctx := newRequestCtx("POST", "/orders/", orderBody)
	env.OrderHandler.CreateOrder(ctx)

	require.Equal(t, 400, ctx.Response.StatusCode())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "Telephone number does not exist. Please provide a valid Telephone number.", resp["error"])

	// no SMS and no stored order
	assert.Empty(t, env.SentMessages())
	orders, err := env.OrderRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestE2E_DuplicateCustomerCode(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx2 := context.Background()

	c := fixtures.TestCustomerNairobi
	_, err := env.CustomerService.Create(ctx2, fixtures.NewTestCustomerCreateRequest(
		c.CustomerCode, c.Name, c.Telephone, c.Location))
	require.NoError(t, err)

	body, _ := json.Marshal(fixtures.NewTestCustomerCreateRequest(
		c.CustomerCode, "Someone Else", "+254712345678", ""))
	ctx := newRequestCtx("POST", "/customers/", body)
	env.CustomerHandler.CreateCustomer(ctx)

	require.Equal(t, 409, ctx.Response.StatusCode())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "Customer code already exists.", resp["error"])

	customers, err := env.CustomerRepo.List(ctx2)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestE2E_OrderCreatedEvenWhenSMSFails(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx2 := context.Background()

	c := fixtures.TestCustomerNairobi
	_, err := env.CustomerService.Create(ctx2, fixtures.NewTestCustomerCreateRequest(
		c.CustomerCode, c.Name, c.Telephone, c.Location))
	require.NoError(t, err)

	// point the transport at a dead endpoint
	env.SMSServer.Close()

	// the failing sender must not surface to the API caller
	deadURL, _ := url.Parse(env.SMSServer.URL)
	smsClient := gateway.NewAfricasTalkingClient(gateway.Config{
		APIURL:   "http://" + deadURL.Host,
		Username: "sandbox",
		APIKey:   "test-api-key",
		SenderID: "KBenedict",
		Timeout:  500 * time.Millisecond,
	})
	orderService := services.NewOrderService(env.OrderRepo, services.NewNotificationService(smsClient))
	orderHandler := handlers.NewOrderHandler(orderService)

	orderBody, _ := json.Marshal(fixtures.NewTestOrderCreateRequest("+254701234567", "Monitor", 300))
	ctx := newRequestCtx("POST", "/orders/", orderBody)
	orderHandler.CreateOrder(ctx)

	require.Equal(t, 201, ctx.Response.StatusCode())

	orders, err := env.OrderRepo.List(ctx2)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Monitor", orders[0].Item)
}
