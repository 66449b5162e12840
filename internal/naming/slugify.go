package naming

import (
	"regexp"
	"strings"
)

// MaxSlugLength is the maximum length of a slug produced by Slugify.
const MaxSlugLength = 50

var (
	// separatorRegex matches runs of whitespace or underscores. The class mirrors
	// the whitespace set browsers use: ASCII whitespace, vertical tab, every
	// Unicode separator (spaces, line and paragraph separators) and the BOM.
	separatorRegex       = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}_]+`)
	disallowedCharRegex  = regexp.MustCompile(`[^a-z0-9-]`)
	consecutiveDashRegex = regexp.MustCompile(`-{2,}`)
)

// Slugify converts arbitrary text into a lowercase, hyphen-delimited token that
// is safe to embed in a branch name.
//
// The result only contains [a-z0-9-], never starts or ends with a dash, never
// contains two dashes in a row and is at most MaxSlugLength characters long.
// Slugify is idempotent and returns "" when nothing survives sanitization.
func Slugify(input string) string {
	if input == "" {
		return ""
	}

	result := strings.ToLower(input)
	result = separatorRegex.ReplaceAllString(result, "-")
	result = disallowedCharRegex.ReplaceAllString(result, "")
	result = consecutiveDashRegex.ReplaceAllString(result, "-")
	result = strings.TrimPrefix(result, "-")
	result = strings.TrimSuffix(result, "-")

	if len(result) > MaxSlugLength {
		// Only ASCII remains, so byte truncation is safe. A cut that lands right
		// after a dash would leave a trailing one.
		result = strings.TrimSuffix(result[:MaxSlugLength], "-")
	}

	return result
}
