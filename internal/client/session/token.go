package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrNoExpiry       = errors.New("token has no exp claim")
)

// decoder only decodes segments; signatures are never checked on the client.
var decoder = jwt.NewParser(jwt.WithPaddingAllowed())

// ExpiresAt reads the exp claim of a JWT without verifying it.
func ExpiresAt(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %d segments", ErrMalformedToken, len(parts))
	}

	payload, err := decoder.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: payload: %w", ErrMalformedToken, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: claims: %w", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: exp: %w", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// IsExpired reports whether token must be treated as expired at now. Any
// token that cannot be decoded, or whose exp is not strictly after now, is
// expired. It never panics.
//
// The result gates UX only (prompting for sign-in early); authorization is
// always decided by the backend.
func IsExpired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	return !exp.After(now)
}
