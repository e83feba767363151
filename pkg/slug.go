package pkg

import (
	"math/rand"
	"regexp"
	"strings"
)

// Ambiguous glyphs (0/O, 1/l/I) are left out so generated ids survive
// being read aloud or retyped.
const randomAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// StringToSlug lowercases a name and collapses every non-alphanumeric
// run into a single hyphen.
func StringToSlug(name string) string {
	slug := nonSlugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// GenerateRandomString returns a random id of the given length.
func GenerateRandomString(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = randomAlphabet[rand.Intn(len(randomAlphabet))]
	}
	return string(out)
}
