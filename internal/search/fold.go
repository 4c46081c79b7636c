package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ has no decomposition, so it is mapped before the marks are removed.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// Fold lowercases s and strips Vietnamese diacritics, so "Quận Bình Thạnh"
// and "quan binh thanh" index to the same terms.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, dReplacer.Replace(s))
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.Join(strings.Fields(result), " "))
}
