package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/entity"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"success":    {err: nil, want: 0},
		"cancelled":  {err: fmt.Errorf("build: %w", context.Canceled), want: 130},
		"duplicates": {err: &content.DuplicateSlugError{Slugs: map[string][]string{"a": {"r1", "r2"}}}, want: 1},
		"other":      {err: errors.New("boom"), want: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func writeSnapshot(t *testing.T, snap *entity.Snapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := content.NewFileSource(path).Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func useGlobals(t *testing.T, path string) {
	t.Helper()
	prevPath, prevSite, prevCfg, prevLog := snapshotPath, site, cfg, log
	t.Cleanup(func() { snapshotPath, site, cfg, log = prevPath, prevSite, prevCfg, prevLog })
	snapshotPath = path
	site = config.DefaultSite()
	cfg = &config.Config{PublicDir: filepath.Join(t.TempDir(), "public")}
	log = zap.NewNop()
}

func TestCheckCommand(t *testing.T) {
	t.Run("unique", func(t *testing.T) {
		useGlobals(t, writeSnapshot(t, &entity.Snapshot{Businesses: []entity.Business{{URL: "a"}, {URL: "b"}}}))
		var out bytes.Buffer
		checkCmd.SetOut(&out)
		checkCmd.SetContext(context.Background())
		if err := checkCmd.RunE(checkCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "no duplicate URLs") {
			t.Fatalf("unexpected output %q", out.String())
		}
	})

	t.Run("duplicates", func(t *testing.T) {
		useGlobals(t, writeSnapshot(t, &entity.Snapshot{Businesses: []entity.Business{
			{RecordID: "r1", URL: "a"}, {RecordID: "r2", URL: "a"},
		}}))
		checkCmd.SetContext(context.Background())
		err := checkCmd.RunE(checkCmd, nil)
		if !errors.Is(err, content.ErrDuplicateSlugs) || exitCode(err) != 1 {
			t.Fatalf("expected duplicate slug failure, got %v", err)
		}
	})
}

func TestBuildCommand(t *testing.T) {
	useGlobals(t, writeSnapshot(t, &entity.Snapshot{
		Businesses: []entity.Business{{RecordID: "r1", Name: "Alpha", URL: "alpha"}},
		Cities:     []entity.City{{Name: "Saigon", URL: "saigon"}},
	}))
	outDir, devMode = "", true
	t.Cleanup(func() { outDir, devMode = "", false })

	buildCmd.SetContext(context.Background())
	if err := buildCmd.RunE(buildCmd, nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, rel := range []string{"index.html", "saigon/index.html", "saigon/byoc/index.html", "alpha/index.html"} {
		if _, err := os.Stat(filepath.Join(cfg.PublicDir, rel)); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.PublicDir, "en")); !os.IsNotExist(err) {
		t.Fatalf("development build must skip other languages")
	}
}
