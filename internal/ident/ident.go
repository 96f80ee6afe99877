// Package ident validates and generates the 24-hex-digit identifiers used for
// stores, products, categories and reference codes.
package ident

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformed is returned when a string is not a 24-hex-digit identifier.
var ErrMalformed = errors.New("ident: malformed identifier")

// New returns a fresh identifier. Identifiers embed their creation second and
// a counter, so ordering by id approximates insertion order.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Parse validates s and returns its canonical lower-case form.
func Parse(s string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return oid.Hex(), nil
}

// ParseAll canonicalises every id in ids, failing on the first malformed one.
func ParseAll(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := Parse(id)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
