// Package identifier converts opaque external record identifiers to and
// from the store's key type. Records are keyed by UUIDs; external callers
// only ever see the canonical string form.
package identifier

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Rezawa7/BookLibrary/internal/core/domain"
)

// Parse validates an external identifier token and converts it to a key.
// It fails with domain.ErrInvalidIdentifier for anything that is not a
// well-formed UUID string.
func Parse(external string) (uuid.UUID, error) {
	key, err := uuid.Parse(external)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, external)
	}
	return key, nil
}

// Format renders a key in its canonical external form. Format is total:
// every key has a string form, and Parse(Format(k)) == k.
func Format(key uuid.UUID) string {
	return key.String()
}

// New assigns a fresh key. Used by the stores when inserting records.
func New() uuid.UUID {
	return uuid.New()
}
