// Package presenter derives the display fields of a business record.
package presenter

import (
	"slices"
	"strings"

	"github.com/benknight/cocolist/internal/badges"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/i18n"
)

// Options carries the site settings a presenter needs.
type Options struct {
	Site        *i18n.Resolver
	Platform    *i18n.Resolver
	PhoneRegion string
	EditFormURL string
}

// Photo pairs a survey image with its raw attachment metadata.
type Photo struct {
	Image *entity.Image          `json:"fixed,omitempty"`
	Raw   *entity.AttachmentMeta `json:"raw,omitempty"`
}

// Business is the read-only display view of one business in one language.
// Every field is derived when the value is built; accessors return copies.
type Business struct {
	lang string
	id   string
	name string
	slug string
	url  string

	thumbnail    *entity.Image
	coverPhoto   *entity.Image
	profilePhoto *entity.Image

	survey        *entity.Survey
	badges        []badges.Badge
	cities        []entity.City
	neighborhoods []entity.Neighborhood
	categories    []string
	photos        []Photo
	links         []Link
	cocoPoints    entity.Number

	website         string
	displayWebsite  string
	facebookLink    string
	phone           *Phone
	fromTheBusiness string
	fromTheEditor   string
	byocDiscount    string
	editFormURL     string
	vnmmRating      entity.Number
	vnmmRatingCount entity.Number
}

// New builds the view of b for lang. A nil record yields an empty view.
func New(b *entity.Business, lang string, opts Options) *Business {
	p := &Business{lang: lang}
	if b == nil {
		return p
	}

	p.id = b.RecordID
	p.name = b.Name
	p.slug = b.Slug()
	p.url = "/" + p.slug
	if opts.Site != nil {
		p.url = opts.Site.Localize(p.url, lang)
	}

	profile := fluidImage(b.ProfilePhoto)
	p.thumbnail = profile
	p.profilePhoto = profile.Clone()
	p.coverPhoto = fluidImage(b.CoverPhoto)

	p.survey = publishedSurvey(b.Survey)
	if p.survey != nil {
		p.badges = badges.Evaluate(p.survey)
		p.photos = photosOf(p.survey.Attachments)
		p.fromTheBusiness = strings.TrimSpace(p.survey.FromTheBusiness.String())
		p.fromTheEditor = strings.TrimSpace(p.survey.FromTheEditor.String())
		p.byocDiscount = strings.TrimSpace(p.survey.BYOCDiscountAmount.String())
		p.editFormURL = editFormURL(opts.EditFormURL, p.survey.PrefillQueryString.String())
	}

	p.neighborhoods = neighborhoodsOf(b)
	p.cities = citiesOf(p.neighborhoods)
	p.categories = categoriesOf(b.Category)
	p.links = buildLinks(b.FacebookLink.String(), b.VNMMLink.String(), lang, opts.Platform)
	p.cocoPoints = b.CocoPoints

	p.website = websiteURL(b.Website.String())
	p.displayWebsite = displayWebsite(b.Website.String())
	p.facebookLink = firstSegment(b.FacebookLink.String())
	p.phone = normalizePhone(b.Phone.String(), opts.PhoneRegion)
	p.vnmmRating = b.VNMMRating
	p.vnmmRatingCount = b.VNMMRatingCount
	return p
}

// ID returns the record id.
func (p *Business) ID() string { return p.id }

// Name returns the business name.
func (p *Business) Name() string { return p.name }

// Slug returns the URL slug without slashes.
func (p *Business) Slug() string { return p.slug }

// Language returns the language the view was built for.
func (p *Business) Language() string { return p.lang }

// URL returns the localized path of the business page.
func (p *Business) URL() string { return p.url }

// Thumbnail returns the profile photo used in lists.
func (p *Business) Thumbnail() *entity.Image { return p.thumbnail.Clone() }

// CoverPhoto returns the cover photo.
func (p *Business) CoverPhoto() *entity.Image { return p.coverPhoto.Clone() }

// ProfilePhoto returns the profile photo.
func (p *Business) ProfilePhoto() *entity.Image { return p.profilePhoto.Clone() }

// Survey returns a copy of the selected published survey, or nil.
func (p *Business) Survey() *entity.Survey {
	return p.survey.Clone()
}

// Badges returns the badges earned by the selected survey.
func (p *Business) Badges() []badges.Badge { return cloneOrEmpty(p.badges) }

// HasBadge reports whether the badge with key was earned.
func (p *Business) HasBadge(key string) bool {
	return slices.ContainsFunc(p.badges, func(b badges.Badge) bool { return b.Key == key })
}

// Cities returns the cities of the business, first seen first.
func (p *Business) Cities() []entity.City { return cloneEach(p.cities, (*entity.City).Clone) }

// InCity reports whether the business is in the city named name.
func (p *Business) InCity(name string) bool {
	return slices.ContainsFunc(p.cities, func(c entity.City) bool { return c.Name == name })
}

// Neighborhoods returns the neighborhoods of the business.
func (p *Business) Neighborhoods() []entity.Neighborhood {
	return cloneEach(p.neighborhoods, (*entity.Neighborhood).Clone)
}

// Categories returns the category names, last stored first.
func (p *Business) Categories() []string { return cloneOrEmpty(p.categories) }

// Photos returns the survey photos, last stored first.
func (p *Business) Photos() []Photo { return cloneEach(p.photos, (*Photo).clone) }

// Links returns the external links: Facebook, Messenger, then delivery platform.
func (p *Business) Links() []Link { return cloneOrEmpty(p.links) }

// CocoPoints returns the score of the business as stored.
func (p *Business) CocoPoints() entity.Number { return p.cocoPoints }

// Website returns the website URL without tracking parameters.
func (p *Business) Website() string { return p.website }

// DisplayWebsite returns the website shortened for reading.
func (p *Business) DisplayWebsite() string { return p.displayWebsite }

// FacebookLink returns the first Facebook link.
func (p *Business) FacebookLink() string { return p.facebookLink }

// Phone returns the formatted phone number, or nil.
func (p *Business) Phone() *Phone {
	if p.phone == nil {
		return nil
	}
	ph := *p.phone
	return &ph
}

// FromTheBusiness returns the note written by the business.
func (p *Business) FromTheBusiness() string { return p.fromTheBusiness }

// FromTheEditor returns the note written by the editors.
func (p *Business) FromTheEditor() string { return p.fromTheEditor }

// BYOCDiscountAmount returns the bring-your-own-container discount.
func (p *Business) BYOCDiscountAmount() string { return p.byocDiscount }

// EditFormURL returns the prefilled survey form link, or "".
func (p *Business) EditFormURL() string { return p.editFormURL }

// VNMMRating returns the delivery platform rating.
func (p *Business) VNMMRating() entity.Number { return p.vnmmRating }

// VNMMRatingCount returns the number of delivery platform ratings.
func (p *Business) VNMMRatingCount() entity.Number { return p.vnmmRatingCount }

func publishedSurvey(links []entity.Linked[entity.Survey]) *entity.Survey {
	for _, s := range entity.Records(links) {
		if s.Published() {
			return s.Clone()
		}
	}
	return nil
}

func fluidImage(a *entity.Attachments) *entity.Image {
	return a.FirstFile().Fluid().Clone()
}

func (ph *Photo) clone() *Photo {
	return &Photo{Image: ph.Image.Clone(), Raw: ph.Raw.Clone()}
}

func photosOf(a *entity.Attachments) []Photo {
	if a == nil {
		return nil
	}
	photos := make([]Photo, 0, len(a.Files))
	for i, f := range a.Files {
		img := f.Fixed()
		if img == nil {
			continue
		}
		photos = append(photos, Photo{Image: img.Clone(), Raw: a.RawAt(i).Clone()})
	}
	slices.Reverse(photos)
	return photos
}

// neighborhoodsOf prefers the neighborhoods of the locations and falls back
// to the direct neighborhood links when locations yield none.
func neighborhoodsOf(b *entity.Business) []entity.Neighborhood {
	var fromLocations []*entity.Neighborhood
	for _, loc := range entity.Records(b.Locations) {
		if h := entity.First(loc.Neighborhood); h != nil {
			fromLocations = append(fromLocations, h)
		}
	}
	hoods := uniqueByName(fromLocations, neighborhoodName, (*entity.Neighborhood).Clone)
	if len(hoods) == 0 {
		hoods = uniqueByName(entity.Records(b.Neighborhood), neighborhoodName, (*entity.Neighborhood).Clone)
	}
	return hoods
}

func neighborhoodName(h *entity.Neighborhood) string { return h.Name }

func citiesOf(hoods []entity.Neighborhood) []entity.City {
	var cities []*entity.City
	for i := range hoods {
		if c := entity.First(hoods[i].City); c != nil {
			cities = append(cities, c)
		}
	}
	return uniqueByName(cities, func(c *entity.City) string { return c.Name }, (*entity.City).Clone)
}

func categoriesOf(links []entity.Linked[entity.Category]) []string {
	var names []string
	for _, c := range entity.Records(links) {
		if name := strings.TrimSpace(c.Name); name != "" {
			names = append(names, name)
		}
	}
	slices.Reverse(names)
	return names
}

func editFormURL(base, prefill string) string {
	base = strings.TrimSpace(base)
	prefill = strings.TrimPrefix(strings.TrimSpace(prefill), "?")
	if base == "" || prefill == "" {
		return ""
	}
	return base + "?" + prefill
}

func uniqueByName[T any](items []*T, name func(*T) string, clone func(*T) *T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		key := name(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, *clone(it))
	}
	return out
}

// cloneEach deep-copies every element so callers cannot reach shared state.
func cloneEach[T any](in []T, clone func(*T) *T) []T {
	out := make([]T, len(in))
	for i := range in {
		out[i] = *clone(&in[i])
	}
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	if len(in) == 0 {
		return []T{}
	}
	return slices.Clone(in)
}
