package handlers

import (
	"context"
	"errors"

	"github.com/kbenedict/customer-orders/internal/auth"
	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

type AuthProvider interface {
	LoginURL() string
	RegisterURL() string
	LogoutURL() string
	Exchange(ctx context.Context, code string) (string, error)
	Domain() string
	ClientID() string
	Audience() string
}

// AuthHandler hosts the stateless identity-provider redirects. The
// authorization server is the source of truth; nothing is stored here.
type AuthHandler struct {
	provider      AuthProvider
	ordersPageURL string
}

func NewAuthHandler(provider AuthProvider, ordersPageURL string) *AuthHandler {
	return &AuthHandler{
		provider:      provider,
		ordersPageURL: ordersPageURL,
	}
}

func RegisterAuthRoutes(r *xhttp.Router, h *AuthHandler) {
	r.GET("/login", h.Login)
	r.GET("/register", h.Register)
	r.GET("/logout", h.Logout)
	r.GET("/callback", h.Callback)
	r.GET("/auth-config/", h.AuthConfig)
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	ctx.Redirect(h.provider.LoginURL(), xhttp.StatusFound)
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	ctx.Redirect(h.provider.RegisterURL(), xhttp.StatusFound)
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	ctx.Redirect(h.provider.LogoutURL(), xhttp.StatusFound)
}

// Callback exchanges the one-time authorization code and forwards the
// browser to the orders page with the token in the URL fragment.
func (h *AuthHandler) Callback(ctx *xhttp.RequestCtx) {
	code := query(ctx, "code")
	if code == "" {
		writeMessage(ctx, xhttp.StatusBadRequest, "Authorization code missing.")
		return
	}

	token, err := h.provider.Exchange(ctx, code)
	if err != nil {
		var exchangeErr *auth.ExchangeError
		switch {
		case errors.As(err, &exchangeErr):
			writeMessage(ctx, exchangeErr.StatusCode, "Token exchange failed: "+exchangeErr.Body)
		case errors.Is(err, auth.ErrTokenNotFound):
			writeMessage(ctx, xhttp.StatusBadRequest, "Token exchange failed. Access token not found.")
		default:
			writeMessage(ctx, xhttp.StatusInternalServerError, "Request error: "+err.Error())
		}
		return
	}

	ctx.Redirect(h.ordersPageURL+"#access_token="+token, xhttp.StatusFound)
}

type authConfigResponse struct {
	Domain   string `json:"domain"`
	ClientID string `json:"client_id"`
	Audience string `json:"audience"`
}

func (h *AuthHandler) AuthConfig(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, 200, authConfigResponse{
		Domain:   h.provider.Domain(),
		ClientID: h.provider.ClientID(),
		Audience: h.provider.Audience(),
	})
}
