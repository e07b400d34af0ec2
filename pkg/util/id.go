// Package util contains any functions used across the application that don't match
// any other package
package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength  = 16
)

// NewID returns a random record id. Ids never contain a comma so they are
// safe to store inside a model.StringSlice.
func NewID() (string, error) {
	return gonanoid.Generate(idCharset, idLength)
}

// ValidID reports whether s looks like an id produced by NewID
func ValidID(s string) bool {
	if len(s) != idLength {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
