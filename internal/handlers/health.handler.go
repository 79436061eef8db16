package handlers

import (
	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

type HealthService interface {
	Get() error
}

type HealthHandler struct {
	healthService HealthService
}

func RegisterHealthRoutes(r *xhttp.Router, h *HealthHandler) {
	r.GET("/health", h.GetHealth)
}

func NewHealthHandler(healthService HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	ctx.Response.SetBodyString("success")
}
