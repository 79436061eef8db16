package handlers

import (
	"encoding/json"

	xhttp "github.com/kbenedict/customer-orders/pkg/http"
)

// Guard is a per-route wrapper, used to put bearer-token enforcement in
// front of the data endpoints.
type Guard = func(next xhttp.RequestHandler) xhttp.RequestHandler

func guarded(h xhttp.RequestHandler, guards []Guard) xhttp.RequestHandler {
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	return h
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeMessage is the identity-flow error shape.
func writeMessage(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"message": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
