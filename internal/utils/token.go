package utils // package utils provides helper functions for hashing and token creation

import (
	"crypto/rand"   // secure random number generation
	"encoding/hex"  // hex encoding functions
)

// NewSessionToken returns an opaque session token: 48 bytes of
// cryptographically secure random data as hex (96 characters). The token
// carries no claims; everything about the session lives server-side keyed
// by this value.
func NewSessionToken() (string, error) {
	return randomHex(48)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. If the random number generator
// fails, an error is returned.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
