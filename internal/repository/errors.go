// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver errors. Uniqueness invariants (login, schedule slot, seat per
// schedule) live in the database schema; when a concurrent insert loses the
// race, MySQL reports a duplicate key and the repository maps it onto the
// same sentinel the pre-check would have produced.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state. Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-key error (1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
