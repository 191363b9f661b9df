package signin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
	"golang.org/x/oauth2"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/session"
)

const authorizeURL = "https://id.example.com/authorize"

type oidcFixture struct {
	cfg     *config.Config
	flow    *OIDCFlow
	source  *session.CookieSource
	metrics *metrics.Metrics
	router  http.Handler
}

// newOIDCFixture builds a discovered flow around a relying party with
// static endpoints, using the same options as live discovery.
func newOIDCFixture(t *testing.T) *oidcFixture {
	t.Helper()
	cfg := testConfig(config.AuthModeOIDC)
	cfg.Auth.OIDC.ClientID = "screenify-web"
	cfg.Auth.OIDC.ClientSecret = "client-secret"
	cfg.Auth.OIDC.CookieKey = "0123456789abcdef0123456789abcdef"
	cfg.Auth.OIDC.RedirectURL = "http://localhost:4002" + CallbackPath
	cfg.Auth.OIDC.Scopes = []string{oidc.ScopeOpenID, oidc.ScopeEmail}

	env := &oidcFixture{cfg: cfg, metrics: metrics.New()}
	env.source = session.NewCookieSource(cfg, slog.Default(), session.NewHMACTokens(cfg))
	env.flow = NewOIDCFlow(cfg, slog.Default(), env.metrics, env.source, nil)
	env.flow.connect = func(context.Context) (rp.RelyingParty, error) {
		oc := cfg.Auth.OIDC
		return rp.NewRelyingPartyOAuth(&oauth2.Config{
			ClientID:     oc.ClientID,
			ClientSecret: oc.ClientSecret,
			RedirectURL:  oc.RedirectURL,
			Scopes:       oc.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authorizeURL,
				TokenURL: "https://id.example.com/token",
			},
		}, env.flow.partyOptions()...)
	}

	env.flow.Discover(context.Background())
	require.True(t, env.flow.Ready())

	env.router = newRouter(NewHandler(cfg, slog.Default(), env.flow, NewRateLimiter(cfg), env.source))
	return env
}

// prompt runs the sign-in prompt and returns the issued state and cookies.
func (env *oidcFixture) prompt(t *testing.T) (string, []*http.Cookie) {
	t.Helper()
	rec := post(t, env.router, SignInPath, "10.0.0.1:1234")
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return loc.Query().Get("state"), rec.Result().Cookies()
}

func (env *oidcFixture) callback(query string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, CallbackPath+"?"+query, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestOIDCFlow_PromptRedirectsToProvider(t *testing.T) {
	env := newOIDCFixture(t)

	rec := post(t, env.router, SignInPath, "10.0.0.1:1234")

	require.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, authorizeURL+"?"), loc)

	u, err := url.Parse(loc)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "screenify-web", q.Get("client_id"))
	assert.Equal(t, env.cfg.Auth.OIDC.RedirectURL, q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.NotEmpty(t, q.Get("state"))

	var stateCookie bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "state" {
			stateCookie = true
			assert.NotEqual(t, q.Get("state"), c.Value, "state cookie is encrypted")
		}
	}
	assert.True(t, stateCookie)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SignInPrompts.WithLabelValues(config.AuthModeOIDC, outcomeRedirected)))
}

func TestOIDCFlow_CallbackRejectsForgedState(t *testing.T) {
	env := newOIDCFixture(t)
	_, cookies := env.prompt(t)

	tests := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no state cookie", nil},
		{"state does not match cookie", cookies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.callback("code=x&state=forged", tt.cookies)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid_state", decodeError(t, rec)["code"])
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.SignInCallbacks.WithLabelValues(outcomeInvalidState)))
}

func TestOIDCFlow_CallbackReportsProviderRefusal(t *testing.T) {
	env := newOIDCFixture(t)
	state, cookies := env.prompt(t)

	rec := env.callback("state="+url.QueryEscape(state)+"&error=access_denied&error_description=user+cancelled", cookies)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "bad_request", body["code"])
	assert.Equal(t, "Sign-in was cancelled or refused by the identity provider", body["message"])
	assert.Equal(t, map[string]any{"reason": "access_denied", "description": "user cancelled"}, body["details"])
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SignInCallbacks.WithLabelValues(outcomeRefused)))
}

func TestOIDCFlow_UnauthorizedCallback(t *testing.T) {
	env := newOIDCFixture(t)

	rec := httptest.NewRecorder()
	env.flow.unauthorized(rec, httptest.NewRequest(http.MethodGet, CallbackPath, nil), "failed to exchange token: boom", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec)["code"])
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SignInCallbacks.WithLabelValues(outcomeRejected)))
}

func TestOIDCFlow_OnTokens(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := &oidc.IDTokenClaims{TokenClaims: oidc.TokenClaims{
		Subject:    "user-42",
		Expiration: oidc.FromTime(exp),
	}}

	t.Run("stores the id token and returns to the landing page", func(t *testing.T) {
		env := newOIDCFixture(t)
		tokens := &oidc.Tokens[*oidc.IDTokenClaims]{Token: &oauth2.Token{}, IDToken: "raw.id.token", IDTokenClaims: claims}

		rec := httptest.NewRecorder()
		env.flow.onTokens(rec, httptest.NewRequest(http.MethodGet, CallbackPath, nil), tokens, "state", nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/welcome", rec.Header().Get("Location"))
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "screenify_session", cookies[0].Name)
		assert.Equal(t, "raw.id.token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, exp.Equal(cookies[0].Expires))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SignInCallbacks.WithLabelValues(outcomeSignedIn)))
	})

	t.Run("rejects a response without an id token", func(t *testing.T) {
		env := newOIDCFixture(t)
		tokens := &oidc.Tokens[*oidc.IDTokenClaims]{Token: &oauth2.Token{AccessToken: "at"}, IDTokenClaims: claims}

		rec := httptest.NewRecorder()
		env.flow.onTokens(rec, httptest.NewRequest(http.MethodGet, CallbackPath, nil), tokens, "state", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_token", decodeError(t, rec)["code"])
		assert.Empty(t, rec.Result().Cookies())
	})
}
