package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const slugSeparators = "·/_:*+~.()'\"!@&[]`%$#?{}|><=^ "

// Slugify follows VTEX's category URL rules: commas are dropped, every
// separator becomes a dash, diacritics are folded and the result is
// lowercased. Runs of dashes are kept, VTEX does not collapse them.
func Slugify(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if strings.ContainsRune(slugSeparators, r) {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
