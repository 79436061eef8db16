package handlers

import (
	"context"
	"errors"

	"github.com/kbenedict/customer-orders/internal/model"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/internal/services"
	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

type OrderService interface {
	Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{
		svc: orderService,
	}
}

func RegisterOrderRoutes(r *xhttp.Router, h *OrderHandler, guards ...Guard) {
	r.POST("/orders/", guarded(h.CreateOrder, guards))
	r.GET("/orders/", guarded(h.ListOrders, guards))
}

type createOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Message string `json:"message"`
}

func (h *OrderHandler) CreateOrder(ctx *xhttp.RequestCtx) {
	var req model.OrderCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	order, err := h.svc.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrCustomerNotFound):
			writeError(ctx, xhttp.StatusBadRequest, "Telephone number does not exist. Please provide a valid Telephone number.")
		default:
			writeError(ctx, xhttp.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		}
		return
	}

	writeJSON(ctx, 201, createOrderResponse{
		OrderID: order.OrderID,
		Message: "Order created successfully and message sent successfully",
	})
}

func (h *OrderHandler) ListOrders(ctx *xhttp.RequestCtx) {
	orders, err := h.svc.List(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	writeJSON(ctx, 200, orders)
}
