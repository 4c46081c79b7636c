// Package badges holds the fixed set of badges a published survey can earn.
package badges

import (
	"slices"

	"github.com/benknight/cocolist/internal/entity"
)

// Badge describes one qualification. Title and Description are message keys.
type Badge struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageLarge  string `json:"image_large"`
	ImageSmall  string `json:"image_small"`
	LinkSlug    string `json:"link_slug"`

	test func(*entity.Survey) bool
}

// Qualifies reports whether s earns the badge. A nil survey never does.
func (b Badge) Qualifies(s *entity.Survey) bool {
	if s == nil || b.test == nil {
		return false
	}
	return b.test(s)
}

func newBadge(key, slug string, test func(*entity.Survey) bool) Badge {
	return Badge{
		Key:         key,
		Title:       "badge_" + key + "_title",
		Description: "badge_" + key + "_description",
		ImageLarge:  "badges/" + slug + "-large.png",
		ImageSmall:  "badges/" + slug + "-small.png",
		LinkSlug:    slug,
		test:        test,
	}
}

func yes(field func(*entity.Survey) entity.Tokens) func(*entity.Survey) bool {
	return func(s *entity.Survey) bool { return field(s).Has("Yes") }
}

// registry is in display order. It is never modified.
var registry = []Badge{
	newBadge("byoc", "byoc", yes(func(s *entity.Survey) entity.Tokens { return s.BYOContainerDiscount })),
	newBadge("green_delivery", "green-delivery", yes(func(s *entity.Survey) entity.Tokens { return s.GreenDelivery })),
	newBadge("food_waste", "food-waste", func(s *entity.Survey) bool {
		return len(s.FoodWastePrograms.Without("None", "No")) > 0
	}),
	newBadge("vegetarian", "vegetarian", func(s *entity.Survey) bool {
		return s.Menu.HasAny("Vegetarian", "Vegan")
	}),
	newBadge("no_plastic_bags", "no-plastic-bags", yes(func(s *entity.Survey) entity.Tokens { return s.NoPlasticBags })),
	newBadge("no_plastic_bottles", "no-plastic-bottles", yes(func(s *entity.Survey) entity.Tokens { return s.NoPlasticBottles })),
	newBadge("no_plastic_straws", "no-plastic-straws", yes(func(s *entity.Survey) entity.Tokens { return s.NoPlasticStraws })),
	newBadge("free_drinking_water", "free-drinking-water", yes(func(s *entity.Survey) entity.Tokens { return s.FreeDrinkingWater })),
}

// All returns every badge in display order.
func All() []Badge {
	return slices.Clone(registry)
}

// Evaluate returns the badges s qualifies for, in display order. It does not
// check the survey status.
func Evaluate(s *entity.Survey) []Badge {
	out := make([]Badge, 0, len(registry))
	if s == nil {
		return out
	}
	for _, b := range registry {
		if b.Qualifies(s) {
			out = append(out, b)
		}
	}
	return out
}

// ByKey finds a badge by key.
func ByKey(key string) (Badge, bool) {
	for _, b := range registry {
		if b.Key == key {
			return b, true
		}
	}
	return Badge{}, false
}

// ByLinkSlug finds a badge by the slug of its list page.
func ByLinkSlug(slug string) (Badge, bool) {
	for _, b := range registry {
		if b.LinkSlug == slug {
			return b, true
		}
	}
	return Badge{}, false
}

// LinkSlugs returns the list page slugs in display order.
func LinkSlugs() []string {
	out := make([]string, 0, len(registry))
	for _, b := range registry {
		out = append(out, b.LinkSlug)
	}
	return out
}

// Keys returns the keys of bs.
func Keys(bs []Badge) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Key)
	}
	return out
}
