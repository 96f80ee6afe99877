// Package slug derives URL-safe, store-unique identifiers from display names.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a name contains nothing that survives transliteration.
const Fallback = "item"

var nonToken = regexp.MustCompile(`[^a-z0-9]+`)

var symbolWords = strings.NewReplacer("&", " and ", "@", " at ", "%", " percent ", "+", " plus ")

// Make lower-cases name, strips diacritics and joins the remaining
// alphanumeric runs with hyphens. It is deterministic.
func Make(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, symbolWords.Replace(name))
	if err != nil {
		folded = name
	}
	s := nonToken.ReplaceAllString(strings.ToLower(folded), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// ProbeFunc reports whether an entity in the caller's scope already owns slug.
type ProbeFunc func(ctx context.Context, slug string) (bool, error)

// Generator resolves slug collisions with a time-derived suffix.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock is NewGenerator with an injectable clock.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate returns Make(name) if exists reports it free. Otherwise it returns
// the slug suffixed with the current Unix time in milliseconds. The suffixed
// value is not probed again.
func (g *Generator) Generate(ctx context.Context, name string, exists ProbeFunc) (string, error) {
	base := Make(name)
	taken, err := exists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("slug: probe for %q failed: %w", base, err)
	}
	if !taken {
		return base, nil
	}
	return base + "-" + strconv.FormatInt(g.now().UnixMilli(), 10), nil
}
