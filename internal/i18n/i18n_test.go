package i18n

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestResolver() *Resolver {
	return NewResolver([]string{"vi", "en"}, "vi")
}

func TestResolverLanguage(t *testing.T) {
	r := newTestResolver()
	tests := map[string]struct {
		path string
		want string
	}{
		"empty":              {path: "", want: "vi"},
		"root":               {path: "/", want: "vi"},
		"english root":       {path: "/en", want: "en"},
		"english page":       {path: "/en/saigon", want: "en"},
		"no leading slash":   {path: "en/saigon", want: "en"},
		"default prefix":     {path: "/vi/saigon", want: "vi"},
		"query after code":   {path: "/en?ref=x", want: "en"},
		"non-leading code":   {path: "/saigon/en", want: "vi"},
		"longer segment":     {path: "/english/about", want: "vi"},
		"uppercase":          {path: "/EN/about", want: "vi"},
		"unsupported code":   {path: "/fr/about", want: "vi"},
		"garbage":            {path: "//%%%", want: "vi"},
		"double slash first": {path: "//en", want: "vi"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.Language(tt.path); got != tt.want {
				t.Fatalf("Language(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolverLocalize(t *testing.T) {
	r := newTestResolver()
	tests := map[string]struct {
		path string
		lang string
		want string
	}{
		"default is identity":      {path: "/saigon", lang: "vi", want: "/saigon"},
		"default keeps odd input":  {path: "saigon//x", lang: "vi", want: "saigon//x"},
		"prefix absolute":          {path: "/saigon", lang: "en", want: "/en/saigon"},
		"prefix relative":          {path: "saigon", lang: "en", want: "/en/saigon"},
		"prefix root":              {path: "/", lang: "en", want: "/en/"},
		"prefix empty":             {path: "", lang: "en", want: "/en"},
		"already prefixed":         {path: "/en/saigon", lang: "en", want: "/en/saigon"},
		"segment only looks alike": {path: "/english", lang: "en", want: "/en/english"},
		"unsupported language":     {path: "/saigon", lang: "fr", want: "/saigon"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.Localize(tt.path, tt.lang); got != tt.want {
				t.Fatalf("Localize(%q, %q) = %q, want %q", tt.path, tt.lang, got, tt.want)
			}
		})
	}
}

func TestResolverLocalizeLaws(t *testing.T) {
	r := newTestResolver()
	paths := []string{"", "/", "/saigon", "saigon/byoc", "/en", "/en/x", "/vi/x", "?q=1", "/a/en/b"}
	for _, p := range paths {
		if got := r.Localize(p, r.Default()); got != p {
			t.Fatalf("identity law broken for %q: got %q", p, got)
		}
		if r.Language(p) != r.Default() && r.Language(p) != "en" {
			t.Fatalf("unexpected language for %q", p)
		}
		once := r.Localize(p, "en")
		if twice := r.Localize(once, "en"); twice != once {
			t.Fatalf("localize not idempotent for %q: %q then %q", p, once, twice)
		}
		if r.Language(once) != "en" {
			t.Fatalf("localized path %q does not resolve to en", once)
		}
	}
}

func TestResolverSwitch(t *testing.T) {
	r := newTestResolver()
	tests := map[string]struct {
		path string
		lang string
		want string
	}{
		"to english":        {path: "/saigon", lang: "en", want: "/en/saigon"},
		"to default":        {path: "/en/saigon", lang: "vi", want: "/saigon"},
		"root to default":   {path: "/en", lang: "vi", want: "/"},
		"query kept":        {path: "/en?x=1", lang: "vi", want: "/?x=1"},
		"explicit default":  {path: "/vi/saigon", lang: "en", want: "/en/saigon"},
		"stays in language": {path: "/en/saigon", lang: "en", want: "/en/saigon"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.Switch(tt.path, tt.lang); got != tt.want {
				t.Fatalf("Switch(%q, %q) = %q, want %q", tt.path, tt.lang, got, tt.want)
			}
		})
	}
}

func TestResolverLocalizeURL(t *testing.T) {
	platform := NewResolver([]string{"vi", "en"}, "vi")
	tests := map[string]struct {
		raw  string
		lang string
		want string
	}{
		"english":       {raw: "https://www.vietnammm.com/en/pho-24", lang: "en", want: "https://www.vietnammm.com/en/pho-24"},
		"to vietnamese": {raw: "https://www.vietnammm.com/en/pho-24", lang: "vi", want: "https://www.vietnammm.com/pho-24"},
		"add english":   {raw: " https://www.vietnammm.com/pho-24 ", lang: "en", want: "https://www.vietnammm.com/en/pho-24"},
		"bare host":     {raw: "https://www.vietnammm.com", lang: "en", want: "https://www.vietnammm.com/en/"},
		"not a url":     {raw: " pho 24 ", lang: "en", want: "pho 24"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := platform.LocalizeURL(tt.raw, tt.lang); got != tt.want {
				t.Fatalf("LocalizeURL(%q, %q) = %q, want %q", tt.raw, tt.lang, got, tt.want)
			}
		})
	}
}

func TestNewResolverAddsDefault(t *testing.T) {
	r := NewResolver([]string{"en", "en", " "}, "vi")
	if diff := cmp.Diff([]string{"vi", "en"}, r.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestNegotiate(t *testing.T) {
	r := newTestResolver()
	tests := map[string]struct {
		header string
		want   string
	}{
		"empty":          {header: "", want: "vi"},
		"english":        {header: "en-US,en;q=0.9", want: "en"},
		"vietnamese":     {header: "vi-VN", want: "vi"},
		"fallback order": {header: "fr-FR, en;q=0.5", want: "en"},
		"unsupported":    {header: "ja", want: "vi"},
		"malformed":      {header: ";;;=", want: "vi"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Negotiate(tt.header, r); got != tt.want {
				t.Fatalf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
