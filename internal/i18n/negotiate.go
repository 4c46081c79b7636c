package i18n

import (
	"golang.org/x/text/language"
)

// Negotiate picks the best supported language for an Accept-Language
// header. The default language wins ties and bad headers.
func Negotiate(acceptLanguage string, r *Resolver) string {
	if acceptLanguage == "" {
		return r.Default()
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return r.Default()
	}

	ordered := []string{r.Default()}
	for _, l := range r.Languages() {
		if l != r.Default() {
			ordered = append(ordered, l)
		}
	}
	tags := make([]language.Tag, 0, len(ordered))
	for _, l := range ordered {
		tags = append(tags, language.Make(l))
	}

	_, idx, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(ordered) {
		return r.Default()
	}
	return ordered[idx]
}
