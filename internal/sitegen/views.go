package sitegen

import (
	"hash/fnv"
	"html/template"
	"math/rand/v2"
	"sort"

	"github.com/benknight/cocolist/internal/badges"
	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/i18n"
	"github.com/benknight/cocolist/internal/presenter"
	"github.com/benknight/cocolist/internal/richtext"
	"github.com/benknight/cocolist/internal/survey"
)

// LanguageLink points at the same page in another language.
type LanguageLink struct {
	Language string
	Path     string
	Current  bool
}

// Meta is shared by every page view.
type Meta struct {
	Language  string
	Path      string
	Home      string
	Title     string
	URL       string
	OGImage   string
	Languages []LanguageLink

	catalog *i18n.Catalog
}

// T returns the message for key in the page language.
func (m Meta) T(key string) string { return m.catalog.Message(m.Language, key) }

// Tf is T with {name} placeholders substituted from alternating name, value pairs.
func (m Meta) Tf(key string, pairs ...string) string {
	args := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		args[pairs[i]] = pairs[i+1]
	}
	return m.catalog.Format(m.Language, key, args)
}

// CityLink is a city entry of the home page.
type CityLink struct {
	Name  string
	Path  string
	Cover string
}

// HomeView is the data of the home page.
type HomeView struct {
	Meta
	Cities []CityLink
}

// PartnerView is the partner shown on a city page.
type PartnerView struct {
	Name string
	Link string
	Logo *entity.Image
}

// BadgeSection is one carousel of a city page.
type BadgeSection struct {
	Badge       badges.Badge
	Title       string
	Description string
	Businesses  []presenter.View
	HasMore     bool
	Link        string
}

// CityView is the data of a city page.
type CityView struct {
	Meta
	City       string
	Count      int
	PromoFirst bool
	Partner    *PartnerView
	Sections   []BadgeSection
}

// ListView is the data of a list page.
type ListView struct {
	Meta
	City       string
	CityPath   string
	Badge      badges.Badge
	Businesses []presenter.View
}

// DetailRow is a survey detail with its label resolved.
type DetailRow struct {
	Label  string
	Values []string
}

// BusinessView is the data of a business page.
type BusinessView struct {
	Meta
	Business        presenter.View
	Details         []DetailRow
	FromTheBusiness template.HTML
	FromTheEditor   template.HTML
}

// Views assembles page views from one snapshot.
type Views struct {
	site     *config.Site
	opts     presenter.Options
	catalog  *i18n.Catalog
	markdown *richtext.Renderer
	snap     *entity.Snapshot
}

// NewViews binds a snapshot to the site settings.
func NewViews(snap *entity.Snapshot, site *config.Site, opts presenter.Options, markdown *richtext.Renderer) *Views {
	if markdown == nil {
		markdown = richtext.New()
	}
	return &Views{
		site:     site,
		opts:     opts,
		catalog:  i18n.BuildCatalog(site.Languages, snap.Translations, snap.Neighborhoods, snap.Cities),
		markdown: markdown,
		snap:     snap,
	}
}

// Catalog returns the message catalog of the snapshot.
func (v *Views) Catalog() *i18n.Catalog { return v.catalog }

// View returns the template data of page.
func (v *Views) View(page Page) any {
	switch page.Kind {
	case KindCity:
		return v.City(page)
	case KindList:
		return v.List(page)
	case KindBusiness:
		return v.Business(page)
	default:
		return v.Home(page)
	}
}

func (v *Views) meta(page Page, title string) Meta {
	m := Meta{
		Language: page.Language,
		Path:     page.Path,
		Home:     v.opts.Site.Localize("/", page.Language),
		Title:    title,
		URL:      v.site.BaseURL + page.Path,
		catalog:  v.catalog,
	}
	for _, lang := range v.opts.Site.Languages() {
		m.Languages = append(m.Languages, LanguageLink{
			Language: lang,
			Path:     v.opts.Site.Switch(page.Path, lang),
			Current:  lang == page.Language,
		})
	}
	return m
}

// Home builds the home page view.
func (v *Views) Home(page Page) HomeView {
	view := HomeView{Meta: v.meta(page, v.catalog.Message(page.Language, "home_page_title"))}
	for i := range v.snap.Cities {
		city := &v.snap.Cities[i]
		if city.Slug() == "" {
			continue
		}
		link := CityLink{
			Name: v.catalog.Message(page.Language, city.Name),
			Path: v.opts.Site.Localize("/"+city.Slug(), page.Language),
		}
		if f := city.Cover.FirstFile(); f != nil {
			link.Cover = f.PublicURL
		}
		view.Cities = append(view.Cities, link)
	}
	return view
}

// published returns the presented businesses of city that have a published
// survey, Coco points descending.
func (v *Views) published(city *entity.City, lang string) []*presenter.Business {
	var out []*presenter.Business
	for i := range v.snap.Businesses {
		p := presenter.New(&v.snap.Businesses[i], lang, v.opts)
		if p.Slug() == "" || p.Survey() == nil || !p.InCity(city.Name) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return points(out[i]) > points(out[j])
	})
	return out
}

func points(p *presenter.Business) float64 {
	if n := p.CocoPoints(); n.Valid {
		return n.Value
	}
	return -1
}

func (v *Views) present(ps []*presenter.Business) []presenter.View {
	out := make([]presenter.View, 0, len(ps))
	for _, p := range ps {
		lang := p.Language()
		out = append(out, p.View(func(key string) string { return v.catalog.Message(lang, key) }))
	}
	return out
}

// City builds the city page view.
func (v *Views) City(page Page) CityView {
	lang := page.Language
	city := page.City
	cityName := v.catalog.Message(lang, city.Name)
	businesses := v.published(city, lang)

	view := CityView{
		Meta:       v.meta(page, v.catalog.Format(lang, "city_page_title", map[string]string{"city": cityName})),
		City:       cityName,
		Count:      len(businesses),
		PromoFirst: len(businesses) < v.site.PromoThreshold,
	}
	if f := city.Cover.FirstFile(); f != nil && f.PublicURL != "" {
		view.OGImage = v.site.BaseURL + f.PublicURL
	}
	if partner := entity.First(city.Partners); partner != nil {
		pv := &PartnerView{Name: partner.Name, Link: partner.Link.String()}
		if f := partner.Logo.FirstFile(); f != nil {
			pv.Logo = f.Fixed()
		}
		view.Partner = pv
	}

	for _, badge := range badges.All() {
		var qualifying []*presenter.Business
		for _, p := range businesses {
			if p.HasBadge(badge.Key) && p.CoverPhoto() != nil {
				qualifying = append(qualifying, p)
			}
		}
		if len(qualifying) == 0 {
			continue
		}
		shuffle(qualifying, city.URL+"/"+badge.Key)

		shown := qualifying
		if len(shown) > v.site.CarouselSize {
			shown = shown[:v.site.CarouselSize]
		}
		view.Sections = append(view.Sections, BadgeSection{
			Badge: badge,
			Title: v.catalog.Message(lang, badge.Title),
			Description: v.catalog.Format(lang, badge.Description, map[string]string{
				"business":      v.catalog.Message(lang, "generic_business_name"),
				"byoc_discount": "",
			}),
			Businesses: v.present(shown),
			HasMore:    len(qualifying) > len(shown),
			Link:       v.opts.Site.Localize("/"+city.Slug()+"/"+badge.LinkSlug, lang),
		})
	}
	return view
}

// shuffle permutes ps with a generator seeded from key, so every build of
// the same content produces the same carousels.
func shuffle(ps []*presenter.Business, key string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum64()
	r := rand.New(rand.NewPCG(seed, seed>>1))
	r.Shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
}

// List builds the list page view.
func (v *Views) List(page Page) ListView {
	lang := page.Language
	city := page.City
	cityName := v.catalog.Message(lang, city.Name)

	var qualifying []*presenter.Business
	for _, p := range v.published(city, lang) {
		if p.HasBadge(page.Badge.Key) {
			qualifying = append(qualifying, p)
		}
	}

	title := v.catalog.Format(lang, "list_page_title", map[string]string{
		"city":  cityName,
		"badge": v.catalog.Message(lang, page.Badge.Title),
	})
	return ListView{
		Meta:       v.meta(page, title),
		City:       cityName,
		CityPath:   v.opts.Site.Localize("/"+city.Slug(), lang),
		Badge:      *page.Badge,
		Businesses: v.present(qualifying),
	}
}

// Business builds the business page view.
func (v *Views) Business(page Page) BusinessView {
	lang := page.Language
	p := presenter.New(page.Business, lang, v.opts)
	view := BusinessView{
		Meta:            v.meta(page, p.Name()),
		Business:        p.View(func(key string) string { return v.catalog.Message(lang, key) }),
		FromTheBusiness: v.markdown.MustRender(p.FromTheBusiness()),
		FromTheEditor:   v.markdown.MustRender(p.FromTheEditor()),
	}
	if cover := p.CoverPhoto(); cover != nil {
		view.OGImage = cover.Src
	}
	for _, d := range survey.ExtractDetails(p.Survey()) {
		row := DetailRow{Label: v.catalog.Message(lang, d.Label)}
		for _, value := range d.Values {
			row.Values = append(row.Values, v.catalog.Message(lang, value))
		}
		view.Details = append(view.Details, row)
	}
	return view
}
