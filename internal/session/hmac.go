package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prajwalgurnule/Screenify/internal/config"
)

const tokenIssuer = "screenify-website"

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HMACTokens issues and verifies HS256 session tokens signed by this
// service. Used in standalone auth mode.
type HMACTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACTokens creates the standalone token codec from config.
func NewHMACTokens(cfg *config.Config) *HMACTokens {
	return &HMACTokens{
		secret: []byte(cfg.Auth.Secret),
		ttl:    cfg.Auth.SessionTTL,
		now:    time.Now,
	}
}

// Issue signs a session token for subject.
func (h *HMACTokens) Issue(subject, email string) (string, time.Time, error) {
	if len(h.secret) == 0 {
		return "", time.Time{}, errors.New("session: no signing secret configured")
	}

	now := h.now()
	expires := now.Add(h.ttl)
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify implements Verifier.
func (h *HMACTokens) Verify(_ context.Context, raw string) (*Claims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return h.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Claims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
