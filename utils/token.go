package utils

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// BlacklistToken invalidates a token until it expires on its own. The
// expiry claim is read without verification; a token that does not parse
// is held for the maximum lifetime instead.
func BlacklistToken(token string) {
	expiry := time.Now().Add(24 * time.Hour)

	claims := &CustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = expiry
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	expiry, exists := blacklistedTokens[token]
	blacklistMutex.RUnlock()

	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}

	blacklistMutex.Lock()
	delete(blacklistedTokens, token)
	blacklistMutex.Unlock()
	return false
}
