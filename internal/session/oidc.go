package session

import (
	"context"
	"fmt"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

// OIDCVerifier accepts ID tokens issued by the identity provider, checked
// against the provider's published keys.
type OIDCVerifier struct {
	verifier *rp.IDTokenVerifier
}

// NewOIDCVerifier wraps an ID token verifier, usually the relying party's
// own, which fetches keys from the provider's JWKS endpoint.
func NewOIDCVerifier(v *rp.IDTokenVerifier) *OIDCVerifier {
	return &OIDCVerifier{verifier: v}
}

// Verify implements Verifier.
func (o *OIDCVerifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims, err := rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, raw, o.verifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return &Claims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.Expiration.AsTime(),
	}, nil
}
