package i18n

import (
	"strings"

	"github.com/benknight/cocolist/internal/entity"
)

// Catalog holds the messages of every language. It is built once and then
// only read.
type Catalog struct {
	messages map[string]map[string]string
}

// BuildCatalog assembles the catalog from the translations table and the
// neighborhood and city names, which are keyed by their default Name. Later
// sources override earlier ones for the same key.
func BuildCatalog(languages []string, translations []entity.Translation, hoods []entity.Neighborhood, cities []entity.City) *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string, len(languages))}
	for _, lang := range languages {
		c.messages[lang] = make(map[string]string)
	}

	for _, tr := range translations {
		if tr.Key == "" {
			continue
		}
		for _, lang := range languages {
			if msg, ok := tr.Values[lang]; ok {
				c.messages[lang][tr.Key] = msg
			}
		}
	}
	for i := range hoods {
		h := &hoods[i]
		if h.Name == "" {
			continue
		}
		for _, lang := range languages {
			c.messages[lang][h.Name] = h.LocalizedName(lang)
		}
	}
	for i := range cities {
		city := &cities[i]
		if city.Name == "" {
			continue
		}
		for _, lang := range languages {
			c.messages[lang][city.Name] = city.LocalizedName(lang)
		}
	}
	return c
}

// Message returns the message for key in lang, or key itself when missing.
func (c *Catalog) Message(lang, key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[lang][key]; ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	return key
}

// Format resolves key and substitutes {name} placeholders from args.
func (c *Catalog) Format(lang, key string, args map[string]string) string {
	msg := c.Message(lang, key)
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Messages returns a copy of every message of lang.
func (c *Catalog) Messages(lang string) map[string]string {
	out := make(map[string]string, len(c.messages[lang]))
	for k, v := range c.messages[lang] {
		out[k] = v
	}
	return out
}
