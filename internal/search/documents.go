// Package search builds the per-language search documents of the directory
// and ships them to the search service.
package search

import (
	"slices"
	"strings"

	"github.com/benknight/cocolist/internal/badges"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/i18n"
	"github.com/benknight/cocolist/internal/presenter"
)

// Document is one business in one language.
type Document struct {
	ID            string   `json:"id"`
	Language      string   `json:"language"`
	Slug          string   `json:"slug"`
	URL           string   `json:"url"`
	Name          string   `json:"name"`
	Categories    []string `json:"categories"`
	Neighborhoods []string `json:"neighborhoods"`
	Cities        []string `json:"cities"`
	Badges        []string `json:"badges"`
	CocoPoints    *float64 `json:"coco_points,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	// Keywords is the folded text every field above is matched against.
	Keywords string `json:"keywords"`
}

// BuildDocuments returns one document per business with a slug and per
// language, ordered by language then slug.
func BuildDocuments(snap *entity.Snapshot, languages []string, opts presenter.Options, catalog *i18n.Catalog) []Document {
	if snap == nil {
		return []Document{}
	}
	docs := make([]Document, 0, len(snap.Businesses)*len(languages))
	for _, lang := range languages {
		start := len(docs)
		for i := range snap.Businesses {
			b := &snap.Businesses[i]
			if b.Slug() == "" {
				continue
			}
			docs = append(docs, newDocument(presenter.New(b, lang, opts), catalog))
		}
		batch := docs[start:]
		slices.SortStableFunc(batch, func(a, b Document) int { return strings.Compare(a.Slug, b.Slug) })
	}
	return docs
}

func newDocument(p *presenter.Business, catalog *i18n.Catalog) Document {
	lang := p.Language()
	doc := Document{
		ID:            lang + ":" + p.Slug(),
		Language:      lang,
		Slug:          p.Slug(),
		URL:           p.URL(),
		Name:          p.Name(),
		Categories:    p.Categories(),
		Neighborhoods: make([]string, 0),
		Cities:        make([]string, 0),
		Badges:        badges.Keys(p.Badges()),
		CocoPoints:    p.CocoPoints().Ptr(),
	}
	for _, h := range p.Neighborhoods() {
		doc.Neighborhoods = append(doc.Neighborhoods, catalog.Message(lang, h.Name))
	}
	for _, c := range p.Cities() {
		doc.Cities = append(doc.Cities, catalog.Message(lang, c.Name))
	}
	if img := p.Thumbnail(); img != nil {
		doc.Thumbnail = img.Src
	}

	terms := []string{doc.Name}
	terms = append(terms, doc.Categories...)
	terms = append(terms, doc.Neighborhoods...)
	terms = append(terms, doc.Cities...)
	doc.Keywords = Fold(strings.Join(terms, " "))
	return doc
}
