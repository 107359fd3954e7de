// internal/pkg/jwt/generator.go
package jwt

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const refreshTTL = 30 * 24 * time.Hour

// Generator signs RS256 tokens. JTIs are ULIDs so the blacklist and session
// store can key on them directly.
type Generator struct {
	priv     *rsa.PrivateKey
	issuer   string
	audience string
	kid      string
	Ttl      time.Duration
}

func NewGenerator(priv *rsa.PrivateKey, issuer, audience, kid string, ttl time.Duration) *Generator {
	return &Generator{
		priv:     priv,
		issuer:   issuer,
		audience: audience,
		kid:      kid,
		Ttl:      ttl,
	}
}

// Generate signs a token for identityID and returns it with its JTI.
func (g *Generator) Generate(identityID string, roles []string, device, purpose string, ttl time.Duration) (string, string, error) {
	if g.priv == nil {
		return "", "", fmt.Errorf("generator has no private key")
	}

	now := time.Now()
	jti := ulid.Make().String()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		IdentityID:     identityID,
		Roles:          roles,
		Device:         device,
		SessionPurpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   identityID,
			Audience:  []string{g.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	})
	if g.kid != "" {
		tok.Header["kid"] = g.kid
	}

	signed, err := tok.SignedString(g.priv)
	return signed, jti, err
}

// GenerateAccessToken issues an access token with the configured TTL.
func (g *Generator) GenerateAccessToken(identityID string, roles []string, device string) (string, string, error) {
	return g.Generate(identityID, roles, device, PurposeAccess, g.Ttl)
}

// GenerateRefreshToken issues a long-lived refresh token. Refresh tokens
// carry no roles; they are only exchanged for new access tokens.
func (g *Generator) GenerateRefreshToken(identityID string, device string) (string, string, error) {
	return g.Generate(identityID, nil, device, PurposeRefresh, refreshTTL)
}
