package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

// NewID returns a 24-character lowercase hex identifier built from 12
// random bytes. Payment memo matching depends on this exact shape.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// IsValidID reports whether s is a well-formed entity identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
