package middleware

import "crypto/subtle"

// Authorizer checks supplied admin secrets against the configured value.
// The secret is injected at construction so handlers never read the
// environment themselves.
type Authorizer struct {
	adminKey string
}

func NewAuthorizer(adminKey string) *Authorizer {
	return &Authorizer{adminKey: adminKey}
}

// Valid reports whether key matches the configured admin secret using
// constant-time comparison to prevent timing attacks. An unconfigured
// secret never matches.
func (a *Authorizer) Valid(key string) bool {
	if a.adminKey == "" {
		return false
	}
	return constantEqual(a.adminKey, key)
}

// constantEqual provides constant-time string equality to avoid timing attacks.
func constantEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
