// Package metrics registers the website's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(New),
)

// Metrics holds the collectors shared across handlers.
type Metrics struct {
	registry *prometheus.Registry

	GateDecisions *prometheus.CounterVec
	SignInPrompts *prometheus.CounterVec

	// SignInCallbacks counts identity provider callbacks by outcome.
	SignInCallbacks *prometheus.CounterVec
}

// New creates collectors on a private registry, alongside the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		GateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screenify",
			Name:      "gate_decisions_total",
			Help:      "Landing page gate outcomes by state.",
		}, []string{"state"}),
		SignInPrompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screenify",
			Name:      "signin_prompts_total",
			Help:      "Sign-in prompts by auth mode and outcome.",
		}, []string{"mode", "outcome"}),
		SignInCallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screenify",
			Name:      "signin_callbacks_total",
			Help:      "Identity provider callbacks by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.GateDecisions,
		m.SignInPrompts,
		m.SignInCallbacks,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
