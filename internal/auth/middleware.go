package auth

import (
	"context"
	"encoding/json"
	"strings"

	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// Require wraps a handler with bearer-token enforcement. The token is
// validated against the identity provider on every request; the
// provider is the source of truth, nothing is cached here.
func Require(v TokenVerifier) func(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			header := string(ctx.Request.Header.Peek("Authorization"))
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(ctx, "missing bearer token")
				return
			}
			if err := v.VerifyToken(ctx, token); err != nil {
				writeUnauthorized(ctx, "invalid bearer token")
				return
			}
			next(ctx)
		}
	}
}

func writeUnauthorized(ctx *xhttp.RequestCtx, msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(xhttp.StatusUnauthorized)
	ctx.Response.SetBodyRaw(b)
}
