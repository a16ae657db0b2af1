package schema

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	nameInvalidChars = regexp.MustCompile(`[^a-z0-9-]`)
	nameRepeatHyphen = regexp.MustCompile(`-+`)
)

// SanitizeName converts free text into a block name: lowercase letters,
// digits and single hyphens, trimmed of leading and trailing hyphens.
func SanitizeName(name string) string {
	candidate := strings.ToLower(strings.TrimSpace(name))
	candidate = strings.NewReplacer(" ", "-", "_", "-").Replace(candidate)

	if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
		candidate = strings.ToLower(normalized)
	}

	candidate = strings.ReplaceAll(candidate, "_", "-")
	candidate = nameInvalidChars.ReplaceAllString(candidate, "")
	candidate = nameRepeatHyphen.ReplaceAllString(candidate, "-")
	return strings.Trim(candidate, "-")
}

// ValidName reports whether name is already in sanitized form.
func ValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}
