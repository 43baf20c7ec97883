// Package frontend is the controller layer of the wiki: it resolves page
// requests against the content engine, paginates history and diffs, and
// gates mutating routes behind the session-based account subsystem.
package frontend

import (
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/preciouswiki/precious/auth"
	"github.com/preciouswiki/precious/frontend/internal/store"
	"github.com/preciouswiki/precious/wiki"
)

// Service binds the account store, the content engine and the view layer.
type Service struct {
	cfg      *Config
	store    *store.Store
	engine   wiki.Engine
	digester Digester
	renderer Renderer
	policy   *bluemonday.Policy
	secret   []byte
	logger   *slog.Logger
}

// New constructs the frontend service. The session secret must be at least
// auth.MinSecretLen bytes; the digest scheme comes from cfg.AuthScheme.
func New(cfg *Config, st *store.Store, engine wiki.Engine, renderer Renderer, logger *slog.Logger) (*Service, error) {
	cfg.defaults()

	if len(cfg.SessionSecret) < auth.MinSecretLen {
		return nil, fmt.Errorf("frontend: session_secret must be at least %d bytes", auth.MinSecretLen)
	}

	var digester Digester
	switch cfg.AuthScheme {
	case "legacy":
		digester = LegacyDigester{}
	case "bcrypt":
		digester = BcryptDigester{}
	default:
		return nil, fmt.Errorf("frontend: unknown auth_scheme %q", cfg.AuthScheme)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:      cfg,
		store:    st,
		engine:   engine,
		digester: digester,
		renderer: renderer,
		policy:   bluemonday.UGCPolicy(),
		secret:   []byte(cfg.SessionSecret),
		logger:   logger,
	}, nil
}

// OpenStore opens the credential database inside wikiRoot, creating it on
// first use. The returned store is handed back to New.
func OpenStore(wikiRoot string) (*store.Store, error) {
	return store.Open(wikiRoot)
}

// Sanitize strips unsafe markup from engine-rendered HTML before it reaches
// a view.
func (s *Service) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
