package entity

import "slices"

func cloneLinks[T any](links []Linked[T], clone func(*T) *T) []Linked[T] {
	if links == nil {
		return nil
	}
	out := make([]Linked[T], len(links))
	for i, l := range links {
		out[i] = Linked[T]{Data: clone(l.Data)}
	}
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image { return clonePtr(img) }

// Clone returns a deep copy of f.
func (f *ImageFile) Clone() *ImageFile {
	if f == nil {
		return nil
	}
	c := *f
	if f.Variants != nil {
		c.Variants = &ImageVariants{Fluid: f.Variants.Fluid.Clone(), Fixed: f.Variants.Fixed.Clone()}
	}
	return &c
}

// Clone returns a deep copy of m.
func (m *AttachmentMeta) Clone() *AttachmentMeta {
	if m == nil {
		return nil
	}
	c := *m
	if m.Thumbnails != nil {
		c.Thumbnails = &Thumbnails{
			Small: clonePtr(m.Thumbnails.Small),
			Large: clonePtr(m.Thumbnails.Large),
			Full:  clonePtr(m.Thumbnails.Full),
		}
	}
	return &c
}

// Clone returns a deep copy of a.
func (a *Attachments) Clone() *Attachments {
	if a == nil {
		return nil
	}
	c := &Attachments{}
	if a.Files != nil {
		c.Files = make([]*ImageFile, len(a.Files))
		for i, f := range a.Files {
			c.Files[i] = f.Clone()
		}
	}
	if a.Raw != nil {
		c.Raw = make([]*AttachmentMeta, len(a.Raw))
		for i, m := range a.Raw {
			c.Raw[i] = m.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of s.
func (s *Survey) Clone() *Survey {
	if s == nil {
		return nil
	}
	c := *s
	c.Attachments = s.Attachments.Clone()
	for _, t := range c.tokenFields() {
		*t = slices.Clone(*t)
	}
	return &c
}

func (s *Survey) tokenFields() []*Tokens {
	return []*Tokens{
		&s.NoPlasticStraws, &s.NoPlasticBags, &s.NoPlasticBottles,
		&s.BYOContainerDiscount, &s.FreeDrinkingWater, &s.GreenDelivery,
		&s.DineInStraws, &s.DineInUtensils, &s.DineInNapkins,
		&s.DineInDrinkContainers, &s.DineInCups, &s.DineInDrinkStirrers,
		&s.DineInLinens, &s.DineInDishes, &s.RestroomHandTowels,
		&s.TakeOutBags, &s.TakeOutContainers, &s.TakeOutCups,
		&s.TakeOutContainerLids, &s.TakeOutCupLids, &s.TakeOutStraws,
		&s.TakeOutCupCarriers, &s.TakeOutCupSleeves, &s.TakeOutFoodWrapping,
		&s.KitchenPipingBags, &s.KitchenPanLiners, &s.KitchenFoodWrapping,
		&s.KitchenGloves, &s.KitchenFreezePackage, &s.KitchenWaste,
		&s.FoodWastePrograms, &s.Menu,
	}
}

// Clone returns a deep copy of p.
func (p *Partner) Clone() *Partner {
	if p == nil {
		return nil
	}
	c := *p
	c.Logo = p.Logo.Clone()
	return &c
}

// Clone returns a deep copy of c.
func (c *City) Clone() *City {
	if c == nil {
		return nil
	}
	out := *c
	out.Cover = c.Cover.Clone()
	out.Partners = cloneLinks(c.Partners, (*Partner).Clone)
	return &out
}

// Clone returns a deep copy of n.
func (n *Neighborhood) Clone() *Neighborhood {
	if n == nil {
		return nil
	}
	c := *n
	c.City = cloneLinks(n.City, (*City).Clone)
	return &c
}
