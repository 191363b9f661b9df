package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/signin"
)

var Module = fx.Module("handlers",
	fx.Provide(
		NewPages,
		func(h *signin.Handler) *Health { return NewHealth(h) },
		func() Navigator { return HTTPNavigator{} },
	),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes mounts the page, auth and health routes.
func RegisterRoutes(r chi.Router, cfg *config.Config, p *Pages, h *Health, s *signin.Handler, m *metrics.Metrics) {
	r.Get(cfg.Site.LandingPath, p.Landing)
	r.Get(cfg.Site.RedirectPath, p.Home)

	s.RegisterRoutes(r)

	r.Get("/health", h.Health)
	r.Get("/healthz", h.Healthz)
	r.Get("/ready", h.Ready)
	r.Get("/version", h.Version)
	r.Handle("/metrics", m.Handler())
}
