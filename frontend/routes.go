package frontend

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preciouswiki/precious/auth"
	"github.com/preciouswiki/precious/shield"
)

// Routes builds the frontend router. Mutating routes sit behind
// auth.RequireUser; everything else is public, including raw file serving.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack() {
		r.Use(mw)
	}
	r.Use(auth.Middleware(s.secret))

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)
	r.Get("/search", s.handleSearch)
	r.Post("/preview", s.handlePreview)
	r.Get("/history/{name}", s.handleHistory)
	r.Post("/compare/{name}", s.handleComparePost)
	r.Get("/compare/{name}/{range}", s.handleCompareGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/edit/*", s.handleEditForm)
		r.Post("/edit/*", s.handleEditSave)
		r.Post("/create/*", s.handleCreate)
		r.Get("/account", s.handleAccountForm)
		r.Post("/account", s.handleAccountPost)
	})

	// Everything else is a page or file name, possibly with a trailing
	// 40-hex revision selector.
	r.Get("/*", s.handleShow)

	return r
}

// render delegates to the view layer; a failed render is logged, not
// surfaced, since headers are likely already written.
func (s *Service) render(w http.ResponseWriter, status int, view string, data any) {
	if err := s.renderer.Render(w, status, view, data); err != nil {
		s.logger.Error("render failed", "view", view, "error", err)
	}
}
