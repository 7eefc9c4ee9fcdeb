package token

import (
	"encoding/json"
	"math"
	"time"
)

// Claims is the payload of a credential. Decoded numbers are json.Number so
// integers survive a round trip exactly.
type Claims map[string]any

// Subject returns the sub claim when it is a non-empty string.
func (c Claims) Subject() (string, bool) {
	sub, ok := c[ClaimSubject].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// Type returns the token class, defaulting to access for credentials issued
// before the type claim existed.
func (c Claims) Type() string {
	if kind, ok := c[ClaimType].(string); ok && kind != "" {
		return kind
	}
	return TypeAccess
}

// ExpiresAt returns the exp claim as a time.
func (c Claims) ExpiresAt() (time.Time, bool) {
	secs, ok := c.expiresAtSeconds()
	if !ok {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))), true
}

func (c Claims) expiresAtSeconds() (float64, bool) {
	switch v := c[ClaimExpiresAt].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
