package signin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/zitadel/oidc/v3/pkg/client/rp"
	httphelper "github.com/zitadel/oidc/v3/pkg/http"
	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
	"github.com/prajwalgurnule/Screenify/pkg/apperror"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
	"github.com/prajwalgurnule/Screenify/pkg/tracing"
)

// ConnectFunc builds a relying party for the identity provider. It performs
// discovery and so may fail while the provider is unreachable.
type ConnectFunc func(ctx context.Context) (rp.RelyingParty, error)

type partyBox struct {
	party rp.RelyingParty
}

// OIDCFlow sends visitors to the identity provider and stores the returned
// ID token as the session cookie.
type OIDCFlow struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	source  *session.CookieSource
	connect ConnectFunc

	party atomic.Pointer[partyBox]
}

// NewOIDCFlow creates the flow. A nil connect uses discovery against
// OIDC_ISSUER.
func NewOIDCFlow(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, source *session.CookieSource, connect ConnectFunc) *OIDCFlow {
	f := &OIDCFlow{
		cfg:     cfg,
		log:     log.With(logger.Scope("signin.oidc")),
		metrics: m,
		source:  source,
		connect: connect,
	}
	if f.connect == nil {
		f.connect = f.discover
	}
	return f
}

func (f *OIDCFlow) discover(ctx context.Context) (rp.RelyingParty, error) {
	oc := f.cfg.Auth.OIDC
	return rp.NewRelyingPartyOIDC(ctx, oc.Issuer, oc.ClientID, oc.ClientSecret, oc.RedirectURL, oc.Scopes, f.partyOptions()...)
}

// partyOptions configures the relying party: encrypted state cookies, PKCE
// for public clients, and JSON error responses on the callback.
func (f *OIDCFlow) partyOptions() []rp.Option {
	oc := f.cfg.Auth.OIDC
	key := []byte(oc.CookieKey)

	cookieOpts := []httphelper.CookieHandlerOpt{}
	if !f.cfg.Auth.CookieSecure {
		cookieOpts = append(cookieOpts, httphelper.WithUnsecure())
	}
	cookies := httphelper.NewCookieHandler(key, key, cookieOpts...)

	opts := []rp.Option{
		rp.WithCookieHandler(cookies),
		rp.WithVerifierOpts(rp.WithIssuedAtOffset(5 * time.Second)),
		rp.WithErrorHandler(f.providerError),
		rp.WithUnauthorizedHandler(f.unauthorized),
	}
	if oc.ClientSecret == "" {
		opts = append(opts, rp.WithPKCE(cookies))
	}
	return opts
}

// providerError answers a callback carrying an OAuth error from the provider,
// typically access_denied when the visitor cancels.
func (f *OIDCFlow) providerError(w http.ResponseWriter, r *http.Request, errorType, errorDesc, _ string) {
	f.metrics.SignInCallbacks.WithLabelValues(outcomeRefused).Inc()
	f.log.Warn("identity provider refused sign-in",
		slog.String("error", errorType),
		slog.String("description", errorDesc),
	)
	details := map[string]any{"reason": errorType}
	if errorDesc != "" {
		details["description"] = errorDesc
	}
	apperror.WriteError(w, r, f.log,
		apperror.NewBadRequest("Sign-in was cancelled or refused by the identity provider").WithDetails(details))
}

// unauthorized answers callbacks that fail state validation or the code
// exchange.
func (f *OIDCFlow) unauthorized(w http.ResponseWriter, r *http.Request, desc, _ string) {
	f.log.Warn("sign-in callback rejected", slog.String("reason", desc))
	if strings.HasPrefix(desc, "failed to get state") {
		f.metrics.SignInCallbacks.WithLabelValues(outcomeInvalidState).Inc()
		apperror.WriteError(w, r, f.log, apperror.ErrInvalidState.WithInternal(errors.New(desc)))
		return
	}
	f.metrics.SignInCallbacks.WithLabelValues(outcomeRejected).Inc()
	apperror.WriteError(w, r, f.log, apperror.ErrUnauthorized.WithInternal(errors.New(desc)))
}

// Discover connects to the identity provider, retrying with exponential
// backoff until it succeeds or ctx is cancelled. On success the session
// source starts verifying ID tokens.
func (f *OIDCFlow) Discover(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.cfg.Auth.OIDC.DiscoveryMinBackoff
	if b.InitialInterval <= 0 {
		b.InitialInterval = time.Second
	}
	b.MaxInterval = max(f.cfg.Auth.OIDC.DiscoveryMaxBackoff, b.InitialInterval)

	party, err := backoff.Retry(ctx, func() (rp.RelyingParty, error) {
		return f.connect(ctx)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			f.log.Warn("identity provider discovery failed",
				logger.Error(err),
				slog.Duration("retry_in", next),
			)
		}),
	)
	if err != nil {
		f.log.Info("identity provider discovery stopped", logger.Error(err))
		return
	}

	f.party.Store(&partyBox{party: party})
	f.source.SetVerifier(session.NewOIDCVerifier(party.IDTokenVerifier()))
	f.log.Info("identity provider discovered", slog.String("issuer", f.cfg.Auth.OIDC.Issuer))
}

// Ready reports whether discovery has completed.
func (f *OIDCFlow) Ready() bool {
	return f.party.Load() != nil
}

func (f *OIDCFlow) relyingParty() (rp.RelyingParty, error) {
	box := f.party.Load()
	if box == nil {
		return nil, apperror.ErrAuthUnavailable.WithInternal(fmt.Errorf("identity provider %s not discovered yet", f.cfg.Auth.OIDC.Issuer))
	}
	return box.party, nil
}

// Prompt redirects to the provider's authorization endpoint.
func (f *OIDCFlow) Prompt(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.Start(r.Context(), "signin.prompt")
	defer span.End()

	party, err := f.relyingParty()
	if err != nil {
		f.metrics.SignInPrompts.WithLabelValues(config.AuthModeOIDC, outcomeUnavailable).Inc()
		apperror.WriteError(w, r, f.log, err)
		return
	}

	f.metrics.SignInPrompts.WithLabelValues(config.AuthModeOIDC, outcomeRedirected).Inc()
	rp.AuthURLHandler(uuid.NewString, party)(w, r)
}

// Callback exchanges the authorization code and stores the ID token.
func (f *OIDCFlow) Callback(w http.ResponseWriter, r *http.Request) {
	party, err := f.relyingParty()
	if err != nil {
		apperror.WriteError(w, r, f.log, err)
		return
	}
	rp.CodeExchangeHandler[*oidc.IDTokenClaims](f.onTokens, party)(w, r)
}

func (f *OIDCFlow) onTokens(w http.ResponseWriter, r *http.Request, tokens *oidc.Tokens[*oidc.IDTokenClaims], _ string, _ rp.RelyingParty) {
	if tokens.IDToken == "" || tokens.IDTokenClaims == nil {
		f.metrics.SignInCallbacks.WithLabelValues(outcomeRejected).Inc()
		apperror.WriteError(w, r, f.log, apperror.ErrInvalidToken.WithMessage("Identity provider returned no ID token"))
		return
	}

	f.metrics.SignInCallbacks.WithLabelValues(outcomeSignedIn).Inc()
	f.source.SetCookie(w, tokens.IDToken, tokens.IDTokenClaims.Expiration.AsTime())
	f.log.Info("oidc session established", slog.String("subject", tokens.IDTokenClaims.Subject))

	http.Redirect(w, r, f.cfg.Site.LandingPath, http.StatusSeeOther)
}
