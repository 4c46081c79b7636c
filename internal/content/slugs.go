package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/benknight/cocolist/internal/entity"
)

// ErrDuplicateSlugs is matched by every DuplicateSlugError.
var ErrDuplicateSlugs = errors.New("duplicate business slugs")

// DuplicateSlugError lists every slug shared by more than one business.
type DuplicateSlugError struct {
	// Slugs maps slug to the record ids sharing it.
	Slugs map[string][]string
}

func (e *DuplicateSlugError) Error() string {
	slugs := make([]string, 0, len(e.Slugs))
	for slug := range e.Slugs {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)

	parts := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		parts = append(parts, fmt.Sprintf("%s (%s)", slug, strings.Join(e.Slugs[slug], ", ")))
	}
	return "duplicate URL fields found: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrDuplicateSlugs.
func (e *DuplicateSlugError) Unwrap() error { return ErrDuplicateSlugs }

// DuplicateSlugs groups businesses by slug and returns the groups with more
// than one member. Businesses without a slug are ignored.
func DuplicateSlugs(businesses []entity.Business) map[string][]string {
	groups := make(map[string][]string)
	for i := range businesses {
		slug := businesses[i].Slug()
		if slug == "" {
			continue
		}
		id := businesses[i].RecordID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		groups[slug] = append(groups[slug], id)
	}

	dups := make(map[string][]string)
	for slug, ids := range groups {
		if len(ids) > 1 {
			dups[slug] = ids
		}
	}
	return dups
}

// HasDuplicateSlugs reports whether two businesses share a slug.
func HasDuplicateSlugs(businesses []entity.Business) bool {
	return len(DuplicateSlugs(businesses)) > 0
}

// CheckSlugs returns a *DuplicateSlugError when slugs are not unique.
func CheckSlugs(businesses []entity.Business) error {
	if dups := DuplicateSlugs(businesses); len(dups) > 0 {
		return &DuplicateSlugError{Slugs: dups}
	}
	return nil
}
