package presenter

import (
	"github.com/benknight/cocolist/internal/badges"
	"github.com/benknight/cocolist/internal/entity"
)

// Place is a named neighborhood or city in a view.
type Place struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// View is a JSON friendly snapshot of every derived field.
type View struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Language        string         `json:"language"`
	URL             string         `json:"url"`
	Thumbnail       *entity.Image  `json:"thumbnail,omitempty"`
	CoverPhoto      *entity.Image  `json:"cover_photo,omitempty"`
	ProfilePhoto    *entity.Image  `json:"profile_photo,omitempty"`
	Published       bool           `json:"published"`
	Badges          []badges.Badge `json:"badges"`
	Cities          []Place        `json:"cities"`
	Neighborhoods   []Place        `json:"neighborhoods"`
	Categories      []string       `json:"categories"`
	Photos          []Photo        `json:"photos"`
	Links           []Link         `json:"links"`
	CocoPoints      *float64       `json:"coco_points,omitempty"`
	Website         string         `json:"website,omitempty"`
	DisplayWebsite  string         `json:"display_website,omitempty"`
	Phone           *Phone         `json:"phone,omitempty"`
	FromTheBusiness string         `json:"from_the_business,omitempty"`
	FromTheEditor   string         `json:"from_the_editor,omitempty"`
	BYOCDiscount    string         `json:"byoc_discount_amount,omitempty"`
	EditFormURL     string         `json:"edit_form_url,omitempty"`
	VNMMRating      *float64       `json:"vnmm_rating,omitempty"`
	VNMMRatingCount *float64       `json:"vnmm_rating_count,omitempty"`
}

// View returns the snapshot of p. Place names are localized with names.
func (p *Business) View(names func(key string) string) View {
	if names == nil {
		names = func(key string) string { return key }
	}
	cities := make([]Place, 0, len(p.cities))
	for _, c := range p.cities {
		cities = append(cities, Place{Key: c.Name, Name: names(c.Name)})
	}
	hoods := make([]Place, 0, len(p.neighborhoods))
	for _, h := range p.neighborhoods {
		hoods = append(hoods, Place{Key: h.Name, Name: names(h.Name)})
	}

	return View{
		ID:              p.id,
		Name:            p.name,
		Slug:            p.slug,
		Language:        p.lang,
		URL:             p.url,
		Thumbnail:       p.Thumbnail(),
		CoverPhoto:      p.CoverPhoto(),
		ProfilePhoto:    p.ProfilePhoto(),
		Published:       p.survey != nil,
		Badges:          p.Badges(),
		Cities:          cities,
		Neighborhoods:   hoods,
		Categories:      p.Categories(),
		Photos:          p.Photos(),
		Links:           p.Links(),
		CocoPoints:      p.cocoPoints.Ptr(),
		Website:         p.website,
		DisplayWebsite:  p.displayWebsite,
		Phone:           p.Phone(),
		FromTheBusiness: p.fromTheBusiness,
		FromTheEditor:   p.fromTheEditor,
		BYOCDiscount:    p.byocDiscount,
		EditFormURL:     p.editFormURL,
		VNMMRating:      p.vnmmRating.Ptr(),
		VNMMRatingCount: p.vnmmRatingCount.Ptr(),
	}
}
