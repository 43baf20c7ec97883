package shield

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Flash reads the "flash" cookie, parses the "success:" or "error:" prefix,
// stores the FlashMessage in the request context and clears the cookie so
// the message is shown exactly once.
func Flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("flash")
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: "flash", MaxAge: -1, Path: "/"})

		raw, _ := url.QueryUnescape(cookie.Value)
		flash := &FlashMessage{Kind: "error", Message: raw}
		if after, ok := strings.CutPrefix(raw, "success:"); ok {
			flash.Kind = "success"
			flash.Message = after
		} else if after, ok := strings.CutPrefix(raw, "error:"); ok {
			flash.Message = after
		}

		ctx := context.WithValue(r.Context(), FlashKey, flash)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetFlash queues a flash message for the next request. The cookie is
// HttpOnly with a short TTL so stale messages expire on their own.
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "flash",
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
