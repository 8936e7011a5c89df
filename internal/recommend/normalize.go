package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// polishReplacer maps the Polish letters NFD decomposition cannot strip.
var polishReplacer = strings.NewReplacer(
	"ł", "l", "Ł", "L",
)

// foldKey canonicalizes a category or brand name for preference matching:
// diacritics removed, lowercased, whitespace trimmed. "Nabiał" and "nabial"
// fold to the same key.
func foldKey(s string) string {
	s = polishReplacer.Replace(s)

	// NFD normalization + strip combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.ToLower(strings.TrimSpace(folded))
}

// foldSet builds a lookup set of folded keys.
func foldSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[foldKey(v)] = struct{}{}
	}
	return set
}
