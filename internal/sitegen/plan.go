// Package sitegen plans, assembles and writes the static pages of the site.
package sitegen

import (
	"fmt"
	"sort"

	"github.com/benknight/cocolist/internal/badges"
	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/i18n"
)

// Kind names the template a page is rendered with.
type Kind string

const (
	KindHome     Kind = "home"
	KindCity     Kind = "city"
	KindList     Kind = "list"
	KindBusiness Kind = "business"
)

// Page is one file of the generated site.
type Page struct {
	Kind     Kind
	Path     string
	Language string

	City     *entity.City
	Badge    *badges.Badge
	Business *entity.Business
}

// PlanOptions selects which languages are planned.
type PlanOptions struct {
	Resolver *i18n.Resolver
	// Development plans the default language only.
	Development bool
}

// Languages returns the languages pages are built for.
func (o PlanOptions) Languages() []string {
	if o.Development {
		return []string{o.Resolver.Default()}
	}
	return o.Resolver.Languages()
}

// Plan lists every page of snap. Duplicate business slugs fail with a
// *content.DuplicateSlugError before anything else is planned.
func Plan(snap *entity.Snapshot, opts PlanOptions) ([]Page, error) {
	if err := content.CheckSlugs(snap.Businesses); err != nil {
		return nil, err
	}

	var pages []Page
	for _, lang := range opts.Languages() {
		localize := func(path string) string { return opts.Resolver.Localize(path, lang) }
		pages = append(pages, Page{Kind: KindHome, Path: localize("/"), Language: lang})

		for i := range snap.Cities {
			city := &snap.Cities[i]
			slug := city.Slug()
			if slug == "" {
				continue
			}
			pages = append(pages, Page{Kind: KindCity, Path: localize("/" + slug), Language: lang, City: city})
			for _, badge := range badges.All() {
				pages = append(pages, Page{
					Kind:     KindList,
					Path:     localize("/" + slug + "/" + badge.LinkSlug),
					Language: lang,
					City:     city,
					Badge:    &badge,
				})
			}
		}

		for i := range snap.Businesses {
			b := &snap.Businesses[i]
			slug := b.Slug()
			if slug == "" {
				continue
			}
			pages = append(pages, Page{Kind: KindBusiness, Path: localize("/" + slug), Language: lang, Business: b})
		}
	}

	if err := checkPaths(pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// PathCollisionError reports pages that would be written to the same file.
type PathCollisionError struct {
	Paths []string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("pages share output paths: %v", e.Paths)
}

func checkPaths(pages []Page) error {
	seen := make(map[string]Kind, len(pages))
	var clashes []string
	for _, p := range pages {
		if prev, ok := seen[p.Path]; ok {
			clashes = append(clashes, fmt.Sprintf("%s (%s, %s)", p.Path, prev, p.Kind))
			continue
		}
		seen[p.Path] = p.Kind
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return &PathCollisionError{Paths: clashes}
	}
	return nil
}
