package handlers

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	g "maragu.dev/gomponents"

	"github.com/prajwalgurnule/Screenify/internal/components"
	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/content"
	"github.com/prajwalgurnule/Screenify/internal/gate"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
	"github.com/prajwalgurnule/Screenify/pkg/apperror"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
	"github.com/prajwalgurnule/Screenify/pkg/tracing"
)

// Navigator sends the visitor elsewhere. It has no error channel.
type Navigator interface {
	Navigate(w http.ResponseWriter, r *http.Request, path string)
}

// HTTPNavigator navigates with a 303 See Other.
type HTTPNavigator struct{}

func (HTTPNavigator) Navigate(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Pages serves the gate-controlled landing page and the signed-in home.
type Pages struct {
	site    config.SiteConfig
	log     *slog.Logger
	metrics *metrics.Metrics
	source  session.Source
	nav     Navigator
	tables  *content.Tables
}

func NewPages(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, source session.Source, nav Navigator, tables *content.Tables) *Pages {
	return &Pages{
		site:    cfg.Site,
		log:     log.With(logger.Scope("pages")),
		metrics: m,
		source:  source,
		nav:     nav,
		tables:  tables,
	}
}

func (p *Pages) pageConfig(refresh int) components.PageConfig {
	return components.PageConfig{
		Title:       p.site.Title,
		Description: p.site.Description,
		Refresh:     refresh,
	}
}

func (p *Pages) particles() []components.Particle {
	seed := p.site.ParticleSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return components.NewParticles(rand.New(rand.NewPCG(seed, seed)), p.site.ParticleCount)
}

// Landing runs the gate once for this render. Loading shows the
// placeholder, an authenticated visitor is navigated away with nothing
// rendered, everyone else gets the marketing page.
func (p *Pages) Landing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Start(r.Context(), "gate.evaluate")
	defer span.End()
	r = r.WithContext(ctx)

	snap := p.source.Resolve(r)
	decision := gate.NewMount(p.site.RedirectPath).Evaluate(snap.Status)

	state := decision.State.String()
	span.SetAttributes(attribute.String("screenify.gate.state", state))
	p.metrics.GateDecisions.WithLabelValues(state).Inc()

	w.Header().Set("Cache-Control", "no-store")
	for _, cmd := range decision.Commands {
		if nav, ok := cmd.(gate.Navigate); ok {
			p.nav.Navigate(w, r, nav.Path)
		}
	}

	switch decision.State {
	case gate.StateLoading:
		p.render(w, r, components.LoadingPage(p.pageConfig(p.site.LoadingRefresh)))
	case gate.StateShowing:
		p.render(w, r, components.LandingPage(p.pageConfig(0), p.tables, p.particles()))
	}
}

// Home greets signed-in visitors and sends anonymous ones to the landing
// page.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	snap := p.source.Resolve(r)
	w.Header().Set("Cache-Control", "no-store")

	switch {
	case snap.IsLoading:
		p.render(w, r, components.LoadingPage(p.pageConfig(p.site.LoadingRefresh)))
	case snap.IsAuthenticated:
		p.render(w, r, components.HomePage(p.pageConfig(0), displayName(snap.Claims)))
	default:
		p.nav.Navigate(w, r, p.site.LandingPath)
	}
}

func displayName(c *session.Claims) string {
	if c == nil {
		return ""
	}
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// render buffers the page so a failed render can still answer with an error.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, page g.Node) {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		apperror.WriteError(w, r, p.log, apperror.ErrRender.WithInternal(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}
