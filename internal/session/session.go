// Package session observes whether the visitor behind a request is signed
// in. It owns the session cookie format but never decides what to render;
// that is the gate's job.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/fx"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/gate"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
)

var Module = fx.Module("session",
	fx.Provide(
		NewHMACTokens,
		NewCookieSource,
		func(s *CookieSource) Source { return s },
	),
)

// ErrInvalidToken is returned by verifiers for tokens that fail validation.
var ErrInvalidToken = errors.New("session: invalid token")

// Claims identify the signed-in visitor.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Verifier checks a raw session token.
type Verifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Snapshot is the session status observed for one request. Claims is set
// only when the visitor is authenticated.
type Snapshot struct {
	gate.Status
	Claims *Claims
}

// Source samples session status from a request.
type Source interface {
	Resolve(r *http.Request) Snapshot
}

type verifierBox struct {
	v Verifier
}

// CookieSource resolves session status from the session cookie. Until a
// verifier is installed, requests carrying a cookie resolve as loading;
// requests without one are anonymous straight away.
type CookieSource struct {
	name   string
	secure bool
	log    *slog.Logger

	verifier atomic.Pointer[verifierBox]
}

// NewCookieSource creates the cookie-backed source. In standalone mode the
// HMAC verifier is installed immediately; in oidc mode it arrives once the
// identity provider has been discovered.
func NewCookieSource(cfg *config.Config, log *slog.Logger, tokens *HMACTokens) *CookieSource {
	s := &CookieSource{
		name:   cfg.Auth.CookieName,
		secure: cfg.Auth.CookieSecure,
		log:    log.With(logger.Scope("session")),
	}
	if !cfg.Auth.IsOIDC() {
		s.SetVerifier(tokens)
	}
	return s
}

// SetVerifier installs the verifier used for subsequent requests.
func (s *CookieSource) SetVerifier(v Verifier) {
	s.verifier.Store(&verifierBox{v: v})
}

// Ready reports whether a verifier is installed.
func (s *CookieSource) Ready() bool {
	return s.verifier.Load() != nil
}

// Resolve implements Source.
func (s *CookieSource) Resolve(r *http.Request) Snapshot {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return Snapshot{}
	}

	box := s.verifier.Load()
	if box == nil {
		return Snapshot{Status: gate.Status{IsLoading: true}}
	}

	claims, err := box.v.Verify(r.Context(), c.Value)
	if err != nil {
		s.log.Debug("session token rejected", logger.Error(err))
		return Snapshot{}
	}

	return Snapshot{Status: gate.Status{IsAuthenticated: true}, Claims: claims}
}

// SetCookie stores token as the session cookie.
func (s *CookieSource) SetCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (s *CookieSource) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
