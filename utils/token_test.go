package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestBlacklistHoldsLiveToken(t *testing.T) {
	token, err := GenerateToken(1, "staff")
	assert.NoError(t, err)

	assert.False(t, IsTokenBlacklisted(token))
	BlacklistToken(token)
	assert.True(t, IsTokenBlacklisted(token))
}

func TestBlacklistEntryExpiresWithToken(t *testing.T) {
	// a token that already expired has nothing left to revoke
	claims := &CustomClaims{
		UserID: 1,
		Role:   "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "QRMenuApp",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
	assert.NoError(t, err)

	BlacklistToken(token)
	assert.False(t, IsTokenBlacklisted(token))
}

func TestBlacklistFallbackForUnparsableToken(t *testing.T) {
	BlacklistToken("not-a-jwt")
	assert.True(t, IsTokenBlacklisted("not-a-jwt"))
}
