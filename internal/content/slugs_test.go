package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benknight/cocolist/internal/entity"
)

func TestDuplicateSlugs(t *testing.T) {
	businesses := []entity.Business{
		{RecordID: "rec1", URL: "pho-24"},
		{RecordID: "rec2", URL: " /pho-24/ "},
		{RecordID: "rec3", URL: "banh-mi"},
		{RecordID: "rec4", URL: ""},
		{RecordID: "rec5", URL: "  "},
	}

	got := DuplicateSlugs(businesses)
	want := map[string][]string{"pho-24": {"rec1", "rec2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected duplicates (-want +got):\n%s", diff)
	}
	if !HasDuplicateSlugs(businesses) {
		t.Fatalf("expected duplicates to be reported")
	}
	if HasDuplicateSlugs(businesses[2:]) {
		t.Fatalf("empty slugs must not count as duplicates")
	}
}

func TestCheckSlugs(t *testing.T) {
	if err := CheckSlugs([]entity.Business{{URL: "a"}, {URL: "b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckSlugs([]entity.Business{{RecordID: "r1", URL: "b"}, {RecordID: "r2", URL: "b"}, {URL: "a"}, {URL: "a"}})
	if !errors.Is(err, ErrDuplicateSlugs) {
		t.Fatalf("expected ErrDuplicateSlugs, got %v", err)
	}
	var dupErr *DuplicateSlugError
	if !errors.As(err, &dupErr) || len(dupErr.Slugs) != 2 {
		t.Fatalf("expected two duplicate groups, got %v", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "a (#2, #3); b (r1, r2)") {
		t.Fatalf("unexpected message: %s", msg)
	}
}
