// Package identity derives stable canonical keys from noisy publisher names.
// Every function here is total and deterministic: identical inputs always
// produce identical output strings, and inputs differing only in case,
// punctuation, or whitespace collapse to the same key.
package identity

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxDimensionKeyLen bounds competition and team keys.
	MaxDimensionKeyLen = 128
	// MaxGameKeyLen bounds game keys, which join more components.
	MaxGameKeyLen = 160
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

	// Seed annotation shapes, in priority order.
	seedParens = regexp.MustCompile(`^(.*?)\s*\((\d{1,2})\)\s*$`)
	seedHash   = regexp.MustCompile(`^(.*?)\s*#(\d{1,2})\s*$`)
	seedNoDot  = regexp.MustCompile(`^(.*?)[\s\-]No\.?\s*(\d{1,2})\s*$`)
)

// CanonicalID normalizes a display name into a prefixed key. It lower-cases,
// replaces every run of non-alphanumeric characters with one underscore, strips
// leading/trailing underscores, and prepends prefix + "_". Applying it to its
// own output yields the same string.
func CanonicalID(prefix, name string) string {
	cleaned := nonAlnumRun.ReplaceAllString(strings.ToLower(name), "_")
	cleaned = strings.Trim(cleaned, "_")
	prefix = strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(prefix), "_"), "_")
	if prefix == "" {
		return cleaned
	}
	if cleaned == "" {
		return prefix
	}
	// Re-canonicalizing an already-prefixed value must be a no-op.
	if cleaned == prefix || strings.HasPrefix(cleaned, prefix+"_") {
		return cleaned
	}
	return prefix + "_" + cleaned
}

// Normalize is CanonicalID without a prefix.
func Normalize(name string) string {
	return CanonicalID("", name)
}

// ExtractSeed splits a tournament seed annotation off a team name. It
// recognizes "Name (5)", "Name #5", and "Name No. 5", tried in that order,
// and trims residual separators from the cleaned name. When no shape matches
// it returns the trimmed input and no seed.
func ExtractSeed(text string) (string, *int) {
	trimmed := strings.TrimSpace(text)
	for _, pattern := range []*regexp.Regexp{seedParens, seedHash, seedNoDot} {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		seed, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		name := strings.Trim(m[1], " -–")
		if name == "" {
			// Annotation-only strings keep their original text as the name.
			return trimmed, nil
		}
		return name, &seed
	}
	return trimmed, nil
}

// JoinKey builds a composite key by normalizing each component, joining with
// ":", and truncating at maxLen. Truncation never fails: overflow keys are
// simply cut, which stays deterministic for fixed inputs.
func JoinKey(maxLen int, components ...string) string {
	parts := make([]string, 0, len(components))
	for _, component := range components {
		parts = append(parts, Normalize(component))
	}
	key := strings.Join(parts, ":")
	if maxLen > 0 && len(key) > maxLen {
		key = key[:maxLen]
	}
	return key
}
