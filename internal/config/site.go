package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Platform describes the language convention of the delivery platform links.
type Platform struct {
	Languages       []string `yaml:"languages"`
	DefaultLanguage string   `yaml:"default_language"`
}

// Tables names the content tables of the Airtable base.
type Tables struct {
	Businesses    string `yaml:"businesses"`
	Surveys       string `yaml:"surveys"`
	Cities        string `yaml:"cities"`
	Neighborhoods string `yaml:"neighborhoods"`
	Locations     string `yaml:"locations"`
	Categories    string `yaml:"categories"`
	Partners      string `yaml:"partners"`
	Translations  string `yaml:"translations"`
}

// Site holds the settings that shape the generated site.
type Site struct {
	BaseURL          string   `yaml:"base_url"`
	Languages        []string `yaml:"languages"`
	DefaultLanguage  string   `yaml:"default_language"`
	DeliveryPlatform Platform `yaml:"delivery_platform"`
	PhoneRegion      string   `yaml:"phone_region"`
	EditFormURL      string   `yaml:"edit_form_url"`
	Tables           Tables   `yaml:"tables"`
	// FieldAliases maps table name to legacy field name to canonical field name.
	FieldAliases   map[string]map[string]string `yaml:"field_aliases"`
	CarouselSize   int                          `yaml:"carousel_size"`
	PromoThreshold int                          `yaml:"promo_threshold"`
}

// DefaultSite returns the settings used when no site file is present.
func DefaultSite() *Site {
	return &Site{
		BaseURL:         "https://cocolist.vn",
		Languages:       []string{"vi", "en"},
		DefaultLanguage: "vi",
		DeliveryPlatform: Platform{
			Languages:       []string{"vi", "en"},
			DefaultLanguage: "vi",
		},
		PhoneRegion: "VN",
		EditFormURL: "https://airtable.com/shrw4zfDcry512acj",
		Tables: Tables{
			Businesses:    "Businesses",
			Surveys:       "Survey",
			Cities:        "Cities",
			Neighborhoods: "Neighborhoods",
			Locations:     "Locations",
			Categories:    "Categories",
			Partners:      "Partners",
			Translations:  "Translations",
		},
		CarouselSize:   8,
		PromoThreshold: 30,
	}
}

// LoadSite reads the YAML site file at path on top of DefaultSite.
// A missing file is not an error.
func LoadSite(path string) (*Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return site, nil
		}
		return nil, fmt.Errorf("read site config: %w", err)
	}

	if err := yaml.Unmarshal(raw, site); err != nil {
		return nil, fmt.Errorf("decode site config: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

// Validate checks the language settings and fills numeric defaults.
func (s *Site) Validate() error {
	if len(s.Languages) == 0 {
		return errors.New("site config: languages must not be empty")
	}
	if !slices.Contains(s.Languages, s.DefaultLanguage) {
		return fmt.Errorf("site config: default language %q is not in %v", s.DefaultLanguage, s.Languages)
	}
	if len(s.DeliveryPlatform.Languages) > 0 && !slices.Contains(s.DeliveryPlatform.Languages, s.DeliveryPlatform.DefaultLanguage) {
		return fmt.Errorf("site config: delivery platform default language %q is not in %v", s.DeliveryPlatform.DefaultLanguage, s.DeliveryPlatform.Languages)
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.CarouselSize <= 0 {
		s.CarouselSize = 8
	}
	if s.PromoThreshold < 0 {
		s.PromoThreshold = 0
	}
	return nil
}

// Alias returns the canonical name for field in table, or field itself.
func (s *Site) Alias(table, field string) string {
	if aliases, ok := s.FieldAliases[table]; ok {
		if canonical, ok := aliases[field]; ok && canonical != "" {
			return canonical
		}
	}
	return field
}
