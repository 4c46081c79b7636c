package content

import (
	"encoding/json"
	"fmt"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/entity"
)

type tableKind int

const (
	kindBusinesses tableKind = iota
	kindSurveys
	kindCities
	kindNeighborhoods
	kindLocations
	kindCategories
	kindPartners
	kindTranslations
)

var allKinds = []tableKind{
	kindBusinesses, kindSurveys, kindCities, kindNeighborhoods,
	kindLocations, kindCategories, kindPartners, kindTranslations,
}

// tableShape lists the linked-record and attachment fields of a table.
// The links form a tree, so resolution always terminates.
type tableShape struct {
	links       map[string]tableKind
	attachments []string
}

var shapes = map[tableKind]tableShape{
	kindBusinesses: {
		links: map[string]tableKind{
			"Category":     kindCategories,
			"Neighborhood": kindNeighborhoods,
			"Locations":    kindLocations,
			"Survey":       kindSurveys,
		},
		attachments: []string{"Cover_photo", "Profile_photo"},
	},
	kindSurveys:       {attachments: []string{"Attachments"}},
	kindCities:        {links: map[string]tableKind{"Partners": kindPartners}, attachments: []string{"Cover"}},
	kindNeighborhoods: {links: map[string]tableKind{"City": kindCities}},
	kindLocations:     {links: map[string]tableKind{"Neighborhood": kindNeighborhoods}},
	kindPartners:      {attachments: []string{"Logo"}},
}

func tableName(t config.Tables, k tableKind) string {
	switch k {
	case kindBusinesses:
		return t.Businesses
	case kindSurveys:
		return t.Surveys
	case kindCities:
		return t.Cities
	case kindNeighborhoods:
		return t.Neighborhoods
	case kindLocations:
		return t.Locations
	case kindCategories:
		return t.Categories
	case kindPartners:
		return t.Partners
	case kindTranslations:
		return t.Translations
	}
	return ""
}

// resolver turns raw rows into the nested documents entity types decode.
type resolver struct {
	rows     map[tableKind][]Record
	byID     map[tableKind]map[string]Record
	resolved map[tableKind]map[string]map[string]any
}

func newResolver(site *config.Site, raw map[tableKind][]Record) *resolver {
	r := &resolver{
		rows:     make(map[tableKind][]Record, len(raw)),
		byID:     make(map[tableKind]map[string]Record, len(raw)),
		resolved: make(map[tableKind]map[string]map[string]any, len(raw)),
	}
	for kind, records := range raw {
		name := tableName(site.Tables, kind)
		index := make(map[string]Record, len(records))
		rows := make([]Record, 0, len(records))
		for _, rec := range records {
			rec = Record{ID: rec.ID, Fields: applyAliases(site, name, rec, kind != kindTranslations)}
			rows = append(rows, rec)
			index[rec.ID] = rec
		}
		r.rows[kind] = rows
		r.byID[kind] = index
		r.resolved[kind] = make(map[string]map[string]any, len(records))
	}
	return r
}

// applyAliases renames legacy fields. A canonical field already present wins.
// withID copies the row id into Record_ID when the table has no such column.
func applyAliases(site *config.Site, table string, rec Record, withID bool) map[string]any {
	fields := make(map[string]any, len(rec.Fields)+1)
	for name, value := range rec.Fields {
		canonical := site.Alias(table, name)
		if canonical != name {
			if _, taken := rec.Fields[canonical]; taken {
				continue
			}
		}
		fields[canonical] = value
	}
	if _, ok := fields["Record_ID"]; withID && !ok && rec.ID != "" {
		fields["Record_ID"] = rec.ID
	}
	return fields
}

// record returns the resolved document for id, or nil when it does not exist.
func (r *resolver) record(kind tableKind, id string) map[string]any {
	if doc, ok := r.resolved[kind][id]; ok {
		return doc
	}
	rec, ok := r.byID[kind][id]
	if !ok {
		return nil
	}
	doc := r.resolve(kind, rec)
	r.resolved[kind][id] = doc
	return doc
}

func (r *resolver) resolve(kind tableKind, rec Record) map[string]any {
	shape := shapes[kind]
	doc := make(map[string]any, len(rec.Fields))
	for name, value := range rec.Fields {
		doc[name] = value
	}
	for field, target := range shape.links {
		ids, ok := doc[field].([]any)
		if !ok {
			continue
		}
		links := make([]any, 0, len(ids))
		for _, v := range ids {
			id, ok := v.(string)
			if !ok {
				continue
			}
			if linked := r.record(target, id); linked != nil {
				links = append(links, map[string]any{"data": linked})
			}
		}
		doc[field] = links
	}
	for _, field := range shape.attachments {
		if items, ok := doc[field].([]any); ok {
			doc[field] = shapeAttachments(items)
		}
	}
	return doc
}

func (r *resolver) documents(kind tableKind) []map[string]any {
	rows := r.rows[kind]
	docs := make([]map[string]any, 0, len(rows))
	for _, rec := range rows {
		docs = append(docs, r.record(kind, rec.ID))
	}
	return docs
}

// shapeAttachments builds {files, raw} from an Airtable attachment array.
// The fluid variant comes from the large thumbnail, the fixed one from small.
func shapeAttachments(items []any) map[string]any {
	files := make([]any, 0, len(items))
	raw := make([]any, 0, len(items))
	for _, item := range items {
		meta, ok := item.(map[string]any)
		if !ok {
			continue
		}
		src, _ := meta["url"].(string)
		thumbs, _ := meta["thumbnails"].(map[string]any)
		files = append(files, map[string]any{
			"publicURL": src,
			"variants": map[string]any{
				"fluid": variant(thumbs, "large", src),
				"fixed": variant(thumbs, "small", src),
			},
		})
		raw = append(raw, meta)
	}
	return map[string]any{"files": files, "raw": raw}
}

func variant(thumbs map[string]any, size, fallback string) map[string]any {
	out := map[string]any{"src": fallback}
	thumb, ok := thumbs[size].(map[string]any)
	if !ok {
		return out
	}
	if src, ok := thumb["url"].(string); ok && src != "" {
		out["src"] = src
	}
	width, _ := thumb["width"].(float64)
	height, _ := thumb["height"].(float64)
	if width > 0 {
		out["width"] = width
	}
	if height > 0 {
		out["height"] = height
		out["aspectRatio"] = width / height
	}
	return out
}

// decodeInto round-trips the resolved documents through JSON into dst.
func decodeInto(docs []map[string]any, dst any) error {
	body, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	return nil
}

func (r *resolver) snapshot() (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	if err := decodeInto(r.documents(kindBusinesses), &snap.Businesses); err != nil {
		return nil, fmt.Errorf("businesses: %w", err)
	}
	if err := decodeInto(r.documents(kindCities), &snap.Cities); err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}
	if err := decodeInto(r.documents(kindNeighborhoods), &snap.Neighborhoods); err != nil {
		return nil, fmt.Errorf("neighborhoods: %w", err)
	}
	if err := decodeInto(r.documents(kindTranslations), &snap.Translations); err != nil {
		return nil, fmt.Errorf("translations: %w", err)
	}
	return snap, nil
}
