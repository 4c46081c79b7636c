package entity

import (
	"encoding/json"
	"testing"
)

func TestSnapshotToleratesOffShapeFields(t *testing.T) {
	input := `{
		"businesses": [
			{
				"Name": 123,
				"URL": ["pizza-4ps"],
				"VNMM_rating": "4.5",
				"Category": "recCategory",
				"Survey": [{"data": {"Status": ["Published"], "Coco_points": 12}}],
				"Locations": [{"data": {"Name": true, "Neighborhood": [{"data": {"Name": ["Ba Dinh"], "City": [{"data": {"Name": ["Hanoi"], "URL": 7}}]}}]}}]
			},
			42
		],
		"cities": [{"Name": ["Hanoi"], "Name_VI": null, "Partners": [{"data": {"Name": 9, "Logo": "logo.png"}}]}],
		"neighborhoods": {"Name": "not a list"},
		"translations": [{"Key": "hello", "en": "Hello"}]
	}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(input), &snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Businesses) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(snap.Businesses))
	}

	b := snap.Businesses[0]
	if b.Name != "123" || b.Slug() != "pizza-4ps" {
		t.Fatalf("unexpected business name/url: %q %q", b.Name, b.URL)
	}
	if b.Category != nil {
		t.Fatalf("expected off-shape category to be skipped, got %+v", b.Category)
	}
	survey := First(b.Survey)
	if survey == nil || !survey.Published() || survey.CocoPoints.Value != 12 {
		t.Fatalf("unexpected survey: %+v", survey)
	}
	loc := First(b.Locations)
	if loc == nil || loc.Name != "Yes" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	hood := First(loc.Neighborhood)
	if hood == nil || hood.Name != "Ba Dinh" {
		t.Fatalf("unexpected neighborhood: %+v", hood)
	}
	if city := First(hood.City); city == nil || city.Name != "Hanoi" || city.URL != "7" {
		t.Fatalf("unexpected nested city: %+v", city)
	}

	if empty := snap.Businesses[1]; empty.Name != "" || empty.Survey != nil {
		t.Fatalf("expected non-object business to decode empty, got %+v", empty)
	}

	if len(snap.Cities) != 1 || snap.Cities[0].Name != "Hanoi" || snap.Cities[0].NameVI != "" {
		t.Fatalf("unexpected cities: %+v", snap.Cities)
	}
	partner := First(snap.Cities[0].Partners)
	if partner == nil || partner.Name != "9" || partner.Logo.FirstFile() != nil {
		t.Fatalf("unexpected partner: %+v", partner)
	}
	if snap.Neighborhoods != nil {
		t.Fatalf("expected off-shape neighborhoods table to be skipped, got %+v", snap.Neighborhoods)
	}
	if len(snap.Translations) != 1 || snap.Translations[0].Key != "hello" {
		t.Fatalf("unexpected translations: %+v", snap.Translations)
	}
}

func TestSnapshotRejectsMalformedJSON(t *testing.T) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(`{"businesses": [`), &snap); err == nil {
		t.Fatalf("expected syntax error")
	}
}
