package export

import "strings"

// invalidChars is ASCII punctuation minus the whitelist
// {- + _ : . |}, plus tab and newline.
const invalidChars = "!\"#$%&'()*,/;<=>?@[\\]^`{}~\t\n"

// Sanitize strips invalid punctuation and control characters from a
// tag value and collapses runs of spaces down to one. Idempotent.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if !strings.ContainsRune(invalidChars, r) {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	for strings.Contains(clean, "  ") {
		clean = strings.ReplaceAll(clean, "  ", " ")
	}
	return clean
}
