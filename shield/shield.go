// Package shield provides the HTTP hardening middleware used by the wiki
// frontend: security headers, a form body size cap, HEAD handling, and
// cookie-backed one-shot flash messages for the login and account forms.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultStack() {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"net/http"
)

type contextKey string

// FlashKey is the context key for flash messages.
const FlashKey contextKey = "shield_flash"

// FlashMessage is a one-time notification shown on the next rendered page.
type FlashMessage struct {
	Kind    string // "success" or "error"
	Message string
}

// GetFlash retrieves the flash message from the request context, or nil.
func GetFlash(ctx context.Context) *FlashMessage {
	v, _ := ctx.Value(FlashKey).(*FlashMessage)
	return v
}

// DefaultStack returns the standard middleware stack for the frontend,
// ordered HeadToGet → SecurityHeaders → MaxFormBody → Flash.
func DefaultStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxFormBody(256 * 1024),
		Flash,
	}
}
