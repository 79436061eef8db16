package handlers

import (
	"context"
	"errors"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/internal/services"
	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

func RegisterCustomerRoutes(r *xhttp.Router, h *CustomerHandler, guards ...Guard) {
	r.POST("/customers/", guarded(h.CreateCustomer, guards))
	r.GET("/customers/", guarded(h.ListCustomers, guards))
}

type createCustomerResponse struct {
	CustomerID int64  `json:"customer_id"`
	Message    string `json:"message"`
}

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req model.CustomerCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	customer, err := h.svc.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrCustomerCodeExists):
			writeError(ctx, xhttp.StatusConflict, "Customer code already exists.")
		default:
			writeError(ctx, xhttp.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		}
		return
	}

	writeJSON(ctx, 201, createCustomerResponse{
		CustomerID: customer.CustomerID,
		Message:    "Customer created successfully",
	})
}

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.svc.List(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	writeJSON(ctx, 200, customers)
}
