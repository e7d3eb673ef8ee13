// Package extract finds candidate wallet addresses in free text.
package extract

import "regexp"

var addressToken = regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{32,44}\b`)

// Addresses returns the distinct syntactically valid addresses in text, in
// order of first appearance. No lookups are performed.
func Addresses(text string) []string {
	matches := addressToken.FindAllString(text, -1)

	out := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
