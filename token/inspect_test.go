package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return tok
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()})

	got, ok := Expiry(tok)
	if !ok {
		t.Fatal("expected an expiry")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}
}

func TestExpiryAbsentForOpaqueTokens(t *testing.T) {
	for _, tok := range []string{"", "opaque-session-token", "a.b"} {
		if _, ok := Expiry(tok); ok {
			t.Fatalf("token %q: expected no expiry", tok)
		}
	}
}

func TestExpiryAbsentWithoutExpClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "u-1"})
	if _, ok := Expiry(tok); ok {
		t.Fatal("expected no expiry without an exp claim")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	live := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	dead := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})

	if Expired(live, now, 0) {
		t.Fatal("live token reported expired")
	}
	if !Expired(dead, now, 0) {
		t.Fatal("expired token reported live")
	}
}

func TestExpiredLeewayShrinksLifetime(t *testing.T) {
	now := time.Now()
	soon := signedToken(t, jwt.MapClaims{"exp": now.Add(10 * time.Second).Unix()})
	past := signedToken(t, jwt.MapClaims{"exp": now.Add(-10 * time.Second).Unix()})

	if Expired(soon, now, 0) {
		t.Fatal("token expired without leeway")
	}
	if !Expired(soon, now, 30*time.Second) {
		t.Fatal("leeway must treat a soon-expiring token as expired")
	}
	if !Expired(past, now, 30*time.Second) {
		t.Fatal("an already-expired token must stay expired under leeway")
	}
	if Expired(soon, now, 5*time.Second) {
		t.Fatal("leeway smaller than the remaining lifetime must keep the token live")
	}
}

func TestExpiredUndeterminedIsLive(t *testing.T) {
	if Expired("opaque-session-token", time.Now(), time.Minute) {
		t.Fatal("opaque tokens must not be reported expired")
	}
}
