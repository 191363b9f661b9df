package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/content"
	"github.com/prajwalgurnule/Screenify/internal/gate"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
)

type stubSource struct {
	snap session.Snapshot
}

func (s *stubSource) Resolve(*http.Request) session.Snapshot { return s.snap }

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(w http.ResponseWriter, r *http.Request, path string) {
	n.paths = append(n.paths, path)
	HTTPNavigator{}.Navigate(w, r, path)
}

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Title:          "Screenify",
			LandingPath:    "/welcome",
			RedirectPath:   "/",
			LoadingRefresh: 2,
			ParticleSeed:   42,
			ParticleCount:  20,
		},
	}
}

type fixture struct {
	pages   *Pages
	source  *stubSource
	nav     *recordingNavigator
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, status gate.Status) *fixture {
	t.Helper()
	tables, err := content.Load()
	require.NoError(t, err)

	f := &fixture{
		source:  &stubSource{snap: session.Snapshot{Status: status}},
		nav:     &recordingNavigator{},
		metrics: metrics.New(),
	}
	f.pages = NewPages(testConfig(), slog.Default(), f.metrics, f.source, f.nav, tables)
	return f
}

func (f *fixture) get(handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLanding_Loading(t *testing.T) {
	f := newFixture(t, gate.Status{IsLoading: true})

	rec := f.get(f.pages.Landing, "/welcome")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.nav.paths)
	assert.Empty(t, rec.Header().Get("Location"))
	body := rec.Body.String()
	assert.Contains(t, body, `data-state="loading"`)
	assert.Contains(t, body, `http-equiv="refresh" content="2"`)
	assert.NotContains(t, body, `data-card=`)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GateDecisions.WithLabelValues("loading")))
}

func TestLanding_LoadingWinsOverAuthenticated(t *testing.T) {
	f := newFixture(t, gate.Status{IsLoading: true, IsAuthenticated: true})

	rec := f.get(f.pages.Landing, "/welcome")

	assert.Empty(t, f.nav.paths)
	assert.Contains(t, rec.Body.String(), `data-state="loading"`)
}

func TestLanding_AuthenticatedRedirectsOnce(t *testing.T) {
	f := newFixture(t, gate.Status{IsAuthenticated: true})

	rec := f.get(f.pages.Landing, "/welcome")

	assert.Equal(t, []string{"/"}, f.nav.paths)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	body := rec.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.NotContains(t, body, `data-card=`)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GateDecisions.WithLabelValues("redirecting")))
}

func TestLanding_AnonymousShowsPage(t *testing.T) {
	f := newFixture(t, gate.Status{})

	rec := f.get(f.pages.Landing, "/welcome")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.nav.paths)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "Screenify")
	assert.Equal(t, 6, strings.Count(body, `data-card="feature"`))
	assert.Equal(t, 3, strings.Count(body, `data-card="testimonial"`))
	assert.Equal(t, 4, strings.Count(body, `data-card="stat"`))
	assert.Equal(t, 5+5+4, strings.Count(body, `data-star="filled"`))
	assert.Equal(t, 1, strings.Count(body, `data-star="empty"`))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GateDecisions.WithLabelValues("showing")))
}

func TestLanding_Idempotent(t *testing.T) {
	f := newFixture(t, gate.Status{})

	first := f.get(f.pages.Landing, "/welcome").Body.String()
	second := f.get(f.pages.Landing, "/welcome").Body.String()

	assert.Equal(t, first, second, "a fixed particle seed renders identical pages")
	assert.Empty(t, f.nav.paths)
}

func TestLanding_SessionChangesBetweenRenders(t *testing.T) {
	f := newFixture(t, gate.Status{IsLoading: true})

	f.get(f.pages.Landing, "/welcome")
	assert.Empty(t, f.nav.paths)

	f.source.snap = session.Snapshot{Status: gate.Status{IsAuthenticated: true}}
	f.get(f.pages.Landing, "/welcome")
	assert.Equal(t, []string{"/"}, f.nav.paths)
}

func TestLanding_Head(t *testing.T) {
	f := newFixture(t, gate.Status{})

	rec := httptest.NewRecorder()
	f.pages.Landing(rec, httptest.NewRequest(http.MethodHead, "/welcome", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHome(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t, gate.Status{IsAuthenticated: true})
		f.source.snap.Claims = &session.Claims{Subject: "u1", Email: "ada@example.com"}

		rec := f.get(f.pages.Home, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Welcome back, ada@example.com")
		assert.Empty(t, f.nav.paths)
	})

	t.Run("loading", func(t *testing.T) {
		f := newFixture(t, gate.Status{IsLoading: true})

		rec := f.get(f.pages.Home, "/")

		assert.Contains(t, rec.Body.String(), `data-state="loading"`)
		assert.Empty(t, f.nav.paths)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, gate.Status{})

		rec := f.get(f.pages.Home, "/")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/welcome", rec.Header().Get("Location"))
		assert.Equal(t, []string{"/welcome"}, f.nav.paths)
	})
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "", displayName(nil))
	assert.Equal(t, "sub", displayName(&session.Claims{Subject: "sub"}))
	assert.Equal(t, "a@b.c", displayName(&session.Claims{Subject: "sub", Email: "a@b.c"}))
}
