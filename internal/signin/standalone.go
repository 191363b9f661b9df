package signin

import (
	"log/slog"
	"net/http"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
	"github.com/prajwalgurnule/Screenify/pkg/apperror"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
	"github.com/prajwalgurnule/Screenify/pkg/tracing"
)

// StandaloneFlow signs every prompt in as the configured standalone user.
// Meant for local development and single-tenant deployments without an
// identity provider.
type StandaloneFlow struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	source  *session.CookieSource
	tokens  *session.HMACTokens
}

func NewStandaloneFlow(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, source *session.CookieSource, tokens *session.HMACTokens) *StandaloneFlow {
	return &StandaloneFlow{
		cfg:     cfg,
		log:     log.With(logger.Scope("signin.standalone")),
		metrics: m,
		source:  source,
		tokens:  tokens,
	}
}

// Prompt issues a session cookie and sends the visitor back to the landing
// page, where the gate takes over.
func (f *StandaloneFlow) Prompt(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.Start(r.Context(), "signin.prompt")
	defer span.End()

	token, expires, err := f.tokens.Issue(f.cfg.Auth.StandaloneUserID, f.cfg.Auth.StandaloneUserEmail)
	if err != nil {
		span.RecordError(err)
		f.metrics.SignInPrompts.WithLabelValues(config.AuthModeStandalone, outcomeFailed).Inc()
		apperror.WriteError(w, r, f.log, apperror.NewInternal("Failed to start session", err))
		return
	}

	f.source.SetCookie(w, token, expires)
	f.metrics.SignInPrompts.WithLabelValues(config.AuthModeStandalone, outcomeSignedIn).Inc()
	f.log.Info("standalone session issued", slog.String("subject", f.cfg.Auth.StandaloneUserID))

	http.Redirect(w, r, f.cfg.Site.LandingPath, http.StatusSeeOther)
}

// Callback is not part of the standalone flow.
func (f *StandaloneFlow) Callback(w http.ResponseWriter, r *http.Request) {
	apperror.WriteError(w, r, f.log, apperror.ErrNotFound)
}

// Ready is always true; the signing secret is local.
func (f *StandaloneFlow) Ready() bool {
	return true
}
