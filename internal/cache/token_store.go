package cache

import (
	"context"
	"time"
)

// TokenStore tracks revoked session tokens until they expire
type TokenStore struct {
	cache CacheService
}

func NewTokenStore(cache CacheService) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks tokenID as revoked for ttl; expired tokens need no entry
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, KeyRevokedTokens+tokenID, true, ttl)
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, KeyRevokedTokens+tokenID)
}
