// Package i18n resolves languages from URL paths, builds localized paths and
// holds the per-language message catalog.
package i18n

import (
	"net/url"
	"slices"
	"strings"
)

// Resolver maps paths to language codes for one set of supported languages.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	languages []string
	def       string
}

// NewResolver builds a resolver. The default language is added to the
// supported set when missing.
func NewResolver(languages []string, defaultLanguage string) *Resolver {
	langs := make([]string, 0, len(languages)+1)
	for _, l := range languages {
		l = strings.TrimSpace(l)
		if l != "" && !slices.Contains(langs, l) {
			langs = append(langs, l)
		}
	}
	if !slices.Contains(langs, defaultLanguage) {
		langs = append([]string{defaultLanguage}, langs...)
	}
	return &Resolver{languages: langs, def: defaultLanguage}
}

// Default returns the default language.
func (r *Resolver) Default() string { return r.def }

// Languages returns the supported languages in configured order.
func (r *Resolver) Languages() []string { return slices.Clone(r.languages) }

// Supported reports whether lang is one of the supported codes.
func (r *Resolver) Supported(lang string) bool {
	return lang != "" && slices.Contains(r.languages, lang)
}

// Language returns the language encoded in the leading segment of path, or
// the default language. Only the leading segment is inspected.
func (r *Resolver) Language(path string) string {
	seg, _ := splitLeading(path)
	if r.Supported(seg) {
		return seg
	}
	return r.def
}

// Localize prefixes path with /lang unless lang is the default language.
// A path that already carries the lang prefix is returned unchanged, which
// makes Localize idempotent. Unsupported languages are treated as default.
func (r *Resolver) Localize(path, lang string) string {
	if lang == r.def || !r.Supported(lang) {
		return path
	}
	if seg, _ := splitLeading(path); seg == lang {
		return path
	}
	switch {
	case path == "":
		return "/" + lang
	case strings.HasPrefix(path, "/"):
		return "/" + lang + path
	default:
		return "/" + lang + "/" + path
	}
}

// Strip removes a recognized language prefix from path.
func (r *Resolver) Strip(path string) string {
	seg, rest := splitLeading(path)
	if !r.Supported(seg) {
		return path
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

// Switch rewrites path, which may already be localized, for lang.
func (r *Resolver) Switch(path, lang string) string {
	return r.Localize(r.Strip(path), lang)
}

// LocalizeURL applies Switch to the path of an absolute URL. Input that does
// not parse as an absolute URL is returned trimmed.
func (r *Resolver) LocalizeURL(raw, lang string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	u.Path = r.Switch(p, lang)
	u.RawPath = ""
	return u.String()
}

func splitLeading(path string) (seg, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	end := strings.IndexAny(trimmed, "/?#")
	if end < 0 {
		return trimmed, ""
	}
	return trimmed[:end], trimmed[end:]
}
