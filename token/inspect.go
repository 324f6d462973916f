package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unverifiedParser decodes claims without signature or claims validation.
// This is deliberate: expiry inspection is a local optimization, not an
// authentication decision.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Expiry returns the exp claim of a JWT. ok is false for opaque tokens,
// malformed JWTs, or JWTs without an exp claim.
func Expiry(tok string) (time.Time, bool) {
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether tok is a JWT whose exp claim is at or before now,
// within leeway. Tokens whose expiry cannot be determined are reported as
// not expired; the provider remains the authority.
func Expired(tok string, now time.Time, leeway time.Duration) bool {
	exp, ok := Expiry(tok)
	if !ok {
		return false
	}
	return !exp.After(now.Add(leeway))
}
