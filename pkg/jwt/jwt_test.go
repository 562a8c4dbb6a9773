package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"
)

func testService(t *testing.T) *Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return NewTestService(key, "storymap.test", 15*time.Minute)
}

func TestSignAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := testService(t)

	token, err := svc.Sign(Claims{
		UserID:      7,
		Email:       "elder@example.test",
		Role:        "elder",
		CommunityID: 1,
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "elder" || claims.CommunityID != 1 {
		t.Errorf("claims did not round-trip: %+v", claims)
	}
	if claims.Issuer != "storymap.test" {
		t.Errorf("expected issuer to be set, got %q", claims.Issuer)
	}
}

func TestValidate_ExpiredToken_Rejected(t *testing.T) {
	t.Parallel()
	svc := testService(t)

	token, err := svc.Sign(Claims{
		UserID:    7,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Validate(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_TamperedToken_Rejected(t *testing.T) {
	t.Parallel()
	svc := testService(t)

	token, err := svc.Sign(Claims{UserID: 7, Role: "viewer"})
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := svc.Validate(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestValidate_WrongIssuer_Rejected(t *testing.T) {
	t.Parallel()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	signer := NewTestService(key, "someone-else", time.Minute)
	verifier := NewTestService(key, "storymap.test", time.Minute)

	token, err := signer.Sign(Claims{UserID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_GarbageToken_Rejected(t *testing.T) {
	t.Parallel()
	svc := testService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := svc.Validate(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}
