// Package signin implements the sign-in prompt the landing page's
// call-to-action buttons invoke, plus the callback and sign-out endpoints
// that complete the flow. Completion is reported back only through the
// session cookie, never to the caller of Prompt.
package signin

import (
	"context"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
)

var Module = fx.Module("signin",
	fx.Provide(
		NewRateLimiter,
		NewFlow,
		NewHandler,
	),
)

// Prompter opens the sign-in flow. It is fire-and-forget: the outcome is
// observed later through the session source.
type Prompter interface {
	Prompt(w http.ResponseWriter, r *http.Request)
}

// Flow is a complete sign-in implementation.
type Flow interface {
	Prompter
	Callback(w http.ResponseWriter, r *http.Request)
	Ready() bool
}

// Sign-in outcomes recorded in metrics
const (
	outcomeRedirected  = "redirected"
	outcomeSignedIn    = "signed_in"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"

	// callback only
	outcomeRefused      = "refused"
	outcomeInvalidState = "invalid_state"
	outcomeRejected     = "rejected"
)

// FlowParams are the dependencies for building the configured flow
type FlowParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Log       *slog.Logger
	Metrics   *metrics.Metrics
	Source    *session.CookieSource
	Tokens    *session.HMACTokens
}

// NewFlow returns the flow selected by AUTH_MODE. The oidc flow starts
// provider discovery in the background when the app starts.
func NewFlow(p FlowParams) Flow {
	if !p.Config.Auth.IsOIDC() {
		return NewStandaloneFlow(p.Config, p.Log, p.Metrics, p.Source, p.Tokens)
	}

	flow := NewOIDCFlow(p.Config, p.Log, p.Metrics, p.Source, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				flow.Discover(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
	return flow
}
