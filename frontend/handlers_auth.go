package frontend

import (
	"errors"
	"net/http"

	"github.com/preciouswiki/precious/auth"
	"github.com/preciouswiki/precious/frontend/internal/store"
	"github.com/preciouswiki/precious/shield"
	"github.com/preciouswiki/precious/wiki"
)

func (s *Service) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", LoginView{})
}

// handleLogin serves both registration and login; the submit button name
// picks the branch. Registration chains into authentication so a fresh
// account lands signed in.
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if r.PostFormValue("register") != "" {
		err := s.Register(ctx, email, r.PostFormValue("fullname"), password, r.PostFormValue("passwordagain"))
		if err != nil {
			s.render(w, http.StatusOK, "login", LoginView{Email: email, Message: userMessage(err)})
			return
		}
	}

	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		// A failed attempt never clears an existing session cookie.
		s.render(w, http.StatusOK, "login", LoginView{Email: email, Message: userMessage(err)})
		return
	}

	if err := s.issueSession(w, r, id); err != nil {
		s.render(w, http.StatusOK, "login", LoginView{Email: email, Message: "Something went wrong"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the session cookie. Logging out while anonymous is a
// no-op redirect.
func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Service) handleAccountForm(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.GetIdentity(r.Context())
	view := AccountView{Email: id.Email, FullName: id.FullName}
	if flash := shield.GetFlash(r.Context()); flash != nil {
		view.Message = flash.Message
	}
	s.render(w, http.StatusOK, "account", view)
}

// handleAccountPost serves the update and delete branches of the account
// form. Failures re-render the form with a message; a successful update
// re-issues the session cookie so the cached full name stays fresh.
func (s *Service) handleAccountPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	id, _ := auth.GetIdentity(ctx)

	switch {
	case r.PostFormValue("update") != "":
		refreshed, err := s.UpdateAccount(ctx, id.Email,
			r.PostFormValue("fullname"), r.PostFormValue("password"), r.PostFormValue("passwordagain"))
		if err != nil {
			s.render(w, http.StatusOK, "account",
				AccountView{Email: id.Email, FullName: id.FullName, Message: userMessage(err)})
			return
		}
		if err := s.issueSession(w, r, refreshed); err != nil {
			s.logger.Error("session refresh failed", "email", id.Email, "error", err)
		}
		shield.SetFlash(w, "success", "User data successfully updated")
		http.Redirect(w, r, "/account", http.StatusSeeOther)

	case r.PostFormValue("delete") != "":
		if err := s.DeleteAccount(ctx, id.Email); err != nil {
			s.render(w, http.StatusOK, "account",
				AccountView{Email: id.Email, FullName: id.FullName, Message: userMessage(err)})
			return
		}
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		s.render(w, http.StatusOK, "account", AccountView{Email: id.Email, FullName: id.FullName})
	}
}

// issueSession mints and sets the session cookie for id.
func (s *Service) issueSession(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	token, err := auth.MintToken(s.secret, id, s.cfg.SessionTTL)
	if err != nil {
		return err
	}
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	auth.SetSessionCookie(w, token, s.cfg.SessionTTL, secure)
	return nil
}

// userMessage maps the error taxonomy onto the message shown on the form.
// Anything outside the taxonomy becomes a generic failure notice.
func userMessage(err error) string {
	var v *ValidationError
	switch {
	case errors.As(err, &v):
		return v.Reason
	case errors.Is(err, ErrAuthentication):
		return "Authentication failed!"
	case errors.Is(err, store.ErrDuplicateAccount):
		return "An account with this email already exists"
	case errors.Is(err, wiki.ErrDuplicatePage):
		return "Duplicate page"
	case errors.Is(err, store.ErrStorage):
		return "Could not access the user database"
	default:
		return "Something went wrong"
	}
}
