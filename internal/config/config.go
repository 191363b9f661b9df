package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Auth modes
const (
	AuthModeStandalone = "standalone"
	AuthModeOIDC       = "oidc"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"4002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`

	// TrustedProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For
	// and X-Real-IP headers are believed. Empty trusts no one.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Site      SiteConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Otel      OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SiteConfig holds landing page settings
type SiteConfig struct {
	Title       string `env:"SITE_TITLE" envDefault:"Screenify - Technical Interviews, Reimagined"`
	Description string `env:"SITE_DESCRIPTION" envDefault:"The next-generation platform for technical interviews and collaborative hiring."`

	// LandingPath serves the gate-controlled marketing page
	LandingPath string `env:"LANDING_PATH" envDefault:"/welcome"`

	// RedirectPath is where signed-in visitors are sent
	RedirectPath string `env:"GATE_REDIRECT_PATH" envDefault:"/"`

	// LoadingRefresh is how often the loading placeholder re-polls, in seconds
	LoadingRefresh int `env:"LOADING_REFRESH_SECONDS" envDefault:"2"`

	// ParticleSeed fixes the decorative particle layout; 0 reseeds per render
	ParticleSeed  uint64 `env:"PARTICLE_SEED" envDefault:"0"`
	ParticleCount int    `env:"PARTICLE_COUNT" envDefault:"20"`
}

// AuthConfig holds session and sign-in settings
type AuthConfig struct {
	// Mode: "standalone" (self-issued session tokens) or "oidc"
	Mode string `env:"AUTH_MODE" envDefault:"standalone"`

	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"screenify_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Secret signs standalone session tokens (HS256)
	Secret string `env:"SESSION_SECRET"`

	// Standalone user the sign-in prompt signs in as
	StandaloneUserID    string `env:"STANDALONE_USER_ID" envDefault:"standalone-user"`
	StandaloneUserEmail string `env:"STANDALONE_USER_EMAIL" envDefault:"admin@localhost"`

	OIDC OIDCConfig
}

// OIDCConfig holds relying party settings for the identity provider
type OIDCConfig struct {
	Issuer       string   `env:"OIDC_ISSUER"`
	ClientID     string   `env:"OIDC_CLIENT_ID"`
	ClientSecret string   `env:"OIDC_CLIENT_SECRET"`
	RedirectURL  string   `env:"OIDC_REDIRECT_URL" envDefault:"http://localhost:4002/auth/callback"`
	Scopes       []string `env:"OIDC_SCOPES" envSeparator:"," envDefault:"openid,profile,email"`

	// CookieKey encrypts the state cookie; must be 16, 24 or 32 bytes
	CookieKey string `env:"OIDC_COOKIE_KEY"`

	// Discovery retry bounds while the provider is unreachable
	DiscoveryMinBackoff time.Duration `env:"OIDC_DISCOVERY_MIN_BACKOFF" envDefault:"1s"`
	DiscoveryMaxBackoff time.Duration `env:"OIDC_DISCOVERY_MAX_BACKOFF" envDefault:"1m"`
}

// RateLimitConfig bounds sign-in attempts per client IP
type RateLimitConfig struct {
	SignInPerMinute int `env:"SIGNIN_RATE_PER_MINUTE" envDefault:"30"`
	SignInBurst     int `env:"SIGNIN_BURST" envDefault:"5"`
}

// OtelConfig holds OpenTelemetry configuration.
// Tracing is disabled when ExporterEndpoint is empty.
type OtelConfig struct {
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"screenify-website"`
	SamplingRate     float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
}

// Enabled returns true when an OTLP endpoint is configured.
func (c OtelConfig) Enabled() bool {
	return c.ExporterEndpoint != ""
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerAddress, c.ServerPort)
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a single
// address prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid CIDR %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid IP %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// IsOIDC reports whether sign-in goes through the external identity provider
func (a *AuthConfig) IsOIDC() bool {
	return a.Mode == AuthModeOIDC
}

// Validate checks settings that cannot be expressed as env defaults
func (c *Config) Validate() error {
	var errs []error

	switch c.Auth.Mode {
	case AuthModeStandalone:
		if c.Auth.Secret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required in standalone auth mode"))
		}
	case AuthModeOIDC:
		if c.Auth.OIDC.Issuer == "" || c.Auth.OIDC.ClientID == "" {
			errs = append(errs, errors.New("OIDC_ISSUER and OIDC_CLIENT_ID are required in oidc auth mode"))
		}
		switch len(c.Auth.OIDC.CookieKey) {
		case 16, 24, 32:
		default:
			errs = append(errs, errors.New("OIDC_COOKIE_KEY must be 16, 24 or 32 bytes"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode))
	}

	if !strings.HasPrefix(c.Site.LandingPath, "/") || !strings.HasPrefix(c.Site.RedirectPath, "/") {
		errs = append(errs, errors.New("LANDING_PATH and GATE_REDIRECT_PATH must be absolute paths"))
	}
	if c.Site.LandingPath == c.Site.RedirectPath {
		errs = append(errs, errors.New("LANDING_PATH must differ from GATE_REDIRECT_PATH"))
	}
	if c.Site.ParticleCount < 0 {
		errs = append(errs, errors.New("PARTICLE_COUNT must not be negative"))
	}
	if c.RateLimit.SignInPerMinute <= 0 || c.RateLimit.SignInBurst <= 0 {
		errs = append(errs, errors.New("SIGNIN_RATE_PER_MINUTE and SIGNIN_BURST must be positive"))
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("landing_path", cfg.Site.LandingPath),
	)

	return cfg, nil
}
