// Package uuid64 provides a compact, URL-safe textual encoding for UUIDs.
//
// A UUID64 renders the 16 raw UUID bytes as 22 characters of unpadded
// URL-safe base64, instead of the 36-character canonical hex form. Parsing
// is strict: only the canonical 22-character encoding round-trips.
package uuid64

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// UUID64 is a UUID with a compact base64 string form. The zero value encodes
// the nil UUID.
type UUID64 struct {
	id uuid.UUID
}

// Random creates a UUID64 backed by a random (version 4) UUID.
func Random() UUID64 {
	return UUID64{id: uuid.New()}
}

// FromUUID wraps an existing UUID.
func FromUUID(id uuid.UUID) UUID64 {
	return UUID64{id: id}
}

// Parse decodes the compact representation produced by String. It rejects
// strings that are not exactly the unpadded URL-safe base64 encoding of 16
// bytes, including padded or otherwise non-canonical variants.
func Parse(s string) (UUID64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return UUID64{}, invalidEncoding(s)
	}
	if len(raw) != 16 {
		return UUID64{}, invalidEncoding(s)
	}
	if base64.RawURLEncoding.EncodeToString(raw) != s {
		return UUID64{}, invalidEncoding(s)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return UUID64{}, invalidEncoding(s)
	}
	return UUID64{id: id}, nil
}

func invalidEncoding(s string) error {
	return fmt.Errorf("uuid64: invalid encoded string: %q", s)
}

// UUID returns the underlying UUID.
func (u UUID64) UUID() uuid.UUID {
	return u.id
}

// String returns the 22-character unpadded URL-safe base64 encoding.
func (u UUID64) String() string {
	return base64.RawURLEncoding.EncodeToString(u.id[:])
}
