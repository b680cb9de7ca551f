package auth

import (
	"context"
	"time"

	"github.com/fennwick/brasserie/pkg/cache"
)

// Logout revokes tokens by jti: the token ID goes into a Redis denylist with
// a TTL matching the token's remaining lifetime, so entries expire themselves
// once the token would have expired anyway.

const denylistPrefix = "auth:denylist:"

// Revoke adds the token's jti to the denylist until the token expires.
func Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already expired
	}

	return cache.SetString(ctx, denylistPrefix+claims.ID, "revoked", ttl)
}

// IsRevoked reports whether the token's jti has been denylisted.
// Fails open when Redis is unavailable: an unreachable denylist must not
// lock every staff member out of the API.
func IsRevoked(ctx context.Context, claims *Claims) bool {
	if claims.ID == "" {
		return false
	}
	return cache.Exists(ctx, denylistPrefix+claims.ID)
}
