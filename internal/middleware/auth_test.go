package middleware_test

import (
	"testing"

	"stoxway.com/licserver/internal/middleware"
)

func TestAuthorizer(t *testing.T) {
	const secret = "test-admin-key-12345"

	t.Run("accepts the configured secret", func(t *testing.T) {
		auth := middleware.NewAuthorizer(secret)
		if !auth.Valid(secret) {
			t.Error("expected matching secret to be valid")
		}
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		auth := middleware.NewAuthorizer(secret)
		if auth.Valid("wrong-key") {
			t.Error("expected wrong secret to be rejected")
		}
	})

	t.Run("rejects an empty secret", func(t *testing.T) {
		auth := middleware.NewAuthorizer(secret)
		if auth.Valid("") {
			t.Error("expected empty secret to be rejected")
		}
	})

	t.Run("rejects a secret differing only in length", func(t *testing.T) {
		auth := middleware.NewAuthorizer(secret)
		if auth.Valid(secret + "x") {
			t.Error("expected longer secret to be rejected")
		}
	})

	t.Run("unconfigured authorizer never matches", func(t *testing.T) {
		auth := middleware.NewAuthorizer("")
		if auth.Valid("") {
			t.Error("expected unconfigured authorizer to reject everything")
		}
		if auth.Valid("anything") {
			t.Error("expected unconfigured authorizer to reject everything")
		}
	})
}
