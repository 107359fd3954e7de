package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"
)

func newTestPair(t *testing.T, ttl time.Duration) (*Generator, *Verifier) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	gen := NewGenerator(key, "vms-api", "vms-clients", "test-key", ttl)
	ver := NewVerifier(&key.PublicKey, "vms-api", "vms-clients")
	return gen, ver
}

func TestAccessTokenRoundTrip(t *testing.T) {
	gen, ver := newTestPair(t, time.Hour)

	token, jti, err := gen.GenerateAccessToken("01J5QZJ9AG4R8Y2W3X1V0TESTA", []string{"admin"}, "mobile")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatalf("expected non-empty jti")
	}

	claims, err := ver.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.IdentityID != "01J5QZJ9AG4R8Y2W3X1V0TESTA" {
		t.Errorf("identity = %q", claims.IdentityID)
	}
	if !claims.HasRole("admin") {
		t.Errorf("expected admin role in claims")
	}
	if claims.ID != jti {
		t.Errorf("jti mismatch: %q != %q", claims.ID, jti)
	}
}

func TestRefreshTokenRejectedForAccess(t *testing.T) {
	gen, ver := newTestPair(t, time.Hour)

	token, _, err := gen.GenerateRefreshToken("01J5QZJ9AG4R8Y2W3X1V0TESTA", "")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := ver.VerifyAccessToken(token); err == nil {
		t.Fatalf("expected refresh token to fail access verification")
	}
	if _, err := ver.VerifyRefreshToken(token); err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	gen, ver := newTestPair(t, -time.Minute)

	token, _, err := gen.GenerateAccessToken("01J5QZJ9AG4R8Y2W3X1V0TESTA", nil, "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ver.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestWrongIssuerRejected(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	gen := NewGenerator(key, "someone-else", "vms-clients", "", time.Hour)
	ver := NewVerifier(&key.PublicKey, "vms-api", "vms-clients")

	token, _, err := gen.GenerateAccessToken("01J5QZJ9AG4R8Y2W3X1V0TESTA", nil, "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ver.Verify(token); err == nil {
		t.Fatalf("expected issuer mismatch to be rejected")
	}
}
