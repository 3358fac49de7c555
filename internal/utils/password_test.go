package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "s3cret-pasS"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	assert.NoError(t, err)
	assert.Len(t, a, 96)

	b, err := NewSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
