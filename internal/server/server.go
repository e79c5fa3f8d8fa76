package server

import (
	"net/http"
	"time"

	"github.com/circadianhq/circadian/internal/config"
	"github.com/circadianhq/circadian/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	store         storage.Store
	cfg           *config.Config
	now           func() time.Time
	authProviders map[string]*AuthProvider
	sessionCookie *securecookie.SecureCookie
}

func New(store storage.Store, cfg *config.Config) *Server {
	return &Server{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// WithAuth installs configured OIDC providers and the session cookie codec.
func (s *Server) WithAuth(providers map[string]*AuthProvider, cookie *securecookie.SecureCookie) *Server {
	s.authProviders = providers
	s.sessionCookie = cookie
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	if s.cfg.AuthEnabled {
		r.Get("/auth/{id}/login", s.login)
		r.Get("/auth/{id}/callback", s.callback)
		r.Get("/auth/logout", s.logout)
	}

	r.Group(func(r chi.Router) {
		if s.cfg.AuthEnabled {
			r.Use(s.authMiddleware)
		}
		r.Get("/state", s.getState)
		r.Put("/schedule", s.putSchedule)
		r.Get("/anchors", s.listAnchors)
		r.Post("/anchors/{anchor_id}/toggle", s.toggleAnchor)
		r.Post("/day", s.activateDay)
		r.Get("/score", s.getScore)
		r.Get("/streak", s.getStreak)
		r.Post("/apikeys", s.mintAPIKey)
	})

	return r
}
