package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := NewConfig(slog.Default())
	require.NoError(t, err)

	assert.Equal(t, 4002, cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:4002", cfg.Addr())
	assert.Equal(t, AuthModeStandalone, cfg.Auth.Mode)
	assert.Equal(t, "screenify_session", cfg.Auth.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "/welcome", cfg.Site.LandingPath)
	assert.Equal(t, "/", cfg.Site.RedirectPath)
	assert.Equal(t, 20, cfg.Site.ParticleCount)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.Auth.OIDC.Scopes)
	assert.False(t, cfg.Otel.Enabled())
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LANDING_PATH", "/landing")
	t.Setenv("PARTICLE_SEED", "42")
	t.Setenv("OIDC_SCOPES", "openid,email")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := NewConfig(slog.Default())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "/landing", cfg.Site.LandingPath)
	assert.Equal(t, uint64(42), cfg.Site.ParticleSeed)
	assert.Equal(t, []string{"openid", "email"}, cfg.Auth.OIDC.Scopes)
	assert.True(t, cfg.Otel.Enabled())
}

func TestNewConfig_InvalidEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	_, err := NewConfig(slog.Default())
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Site: SiteConfig{LandingPath: "/welcome", RedirectPath: "/", ParticleCount: 20},
		Auth: AuthConfig{Mode: AuthModeStandalone, Secret: "s"},
		RateLimit: RateLimitConfig{
			SignInPerMinute: 30,
			SignInBurst:     5,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid standalone",
			mutate: func(c *Config) {},
		},
		{
			name:    "standalone without secret",
			mutate:  func(c *Config) { c.Auth.Secret = "" },
			wantErr: "SESSION_SECRET",
		},
		{
			name: "valid oidc",
			mutate: func(c *Config) {
				c.Auth.Mode = AuthModeOIDC
				c.Auth.OIDC = OIDCConfig{Issuer: "https://id.example.com", ClientID: "web", CookieKey: "0123456789abcdef"}
			},
		},
		{
			name: "oidc without issuer",
			mutate: func(c *Config) {
				c.Auth.Mode = AuthModeOIDC
				c.Auth.OIDC = OIDCConfig{ClientID: "web", CookieKey: "0123456789abcdef"}
			},
			wantErr: "OIDC_ISSUER",
		},
		{
			name: "oidc with short cookie key",
			mutate: func(c *Config) {
				c.Auth.Mode = AuthModeOIDC
				c.Auth.OIDC = OIDCConfig{Issuer: "https://id.example.com", ClientID: "web", CookieKey: "short"}
			},
			wantErr: "OIDC_COOKIE_KEY",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Auth.Mode = "magic" },
			wantErr: "unknown AUTH_MODE",
		},
		{
			name:    "landing equals redirect",
			mutate:  func(c *Config) { c.Site.LandingPath = "/" },
			wantErr: "must differ",
		},
		{
			name:    "relative landing path",
			mutate:  func(c *Config) { c.Site.LandingPath = "welcome" },
			wantErr: "absolute paths",
		},
		{
			name:    "zero rate",
			mutate:  func(c *Config) { c.RateLimit.SignInPerMinute = 0 },
			wantErr: "SIGNIN_RATE_PER_MINUTE",
		},
		{
			name:   "trusted proxies",
			mutate: func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.7", "::1"} },
		},
		{
			name:    "bad trusted proxy",
			mutate:  func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/40"} },
			wantErr: "TRUSTED_PROXIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTrustedProxyPrefixes(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("TRUSTED_PROXIES", "10.1.2.3/8, 192.0.2.7,,::ffff:198.51.100.1")

	cfg, err := NewConfig(slog.Default())
	require.NoError(t, err)

	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.7/32", prefixes[1].String())
	assert.Equal(t, "198.51.100.1/32", prefixes[2].String())
}
