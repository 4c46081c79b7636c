package sitegen

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/metrics"
	"github.com/benknight/cocolist/internal/presenter"
	"github.com/benknight/cocolist/internal/richtext"
)

//go:embed templates/*.html
var embedded embed.FS

// Templates returns the built-in page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

var kinds = []Kind{KindHome, KindCity, KindList, KindBusiness}

// Renderer executes the page templates.
type Renderer struct {
	templates map[Kind]*template.Template
}

// NewRenderer parses layout.html together with one template per page kind
// from fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[Kind]*template.Template, len(kinds))}
	for _, kind := range kinds {
		tmpl, err := template.New("layout.html").ParseFS(fsys, "layout.html", string(kind)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}
	return r, nil
}

// Render writes the page with data to w.
func (r *Renderer) Render(w io.Writer, kind Kind, data any) error {
	tmpl, ok := r.templates[kind]
	if !ok {
		return fmt.Errorf("no template for page kind %q", kind)
	}
	return tmpl.Execute(w, data)
}

// OutputPath returns the file a page path is written to below dir.
func OutputPath(dir, pagePath string) (string, error) {
	rel := filepath.FromSlash(strings.Trim(pagePath, "/"))
	if rel == "" {
		return filepath.Join(dir, "index.html"), nil
	}
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("page path %q escapes the output directory", pagePath)
	}
	return filepath.Join(dir, rel, "index.html"), nil
}

// Generator builds the whole site into OutDir.
type Generator struct {
	Site      *config.Site
	Options   presenter.Options
	Renderer  *Renderer
	Markdown  *richtext.Renderer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	OutDir    string
	Dev       bool
	Parallel  int
	Templates fs.FS
}

// Result summarizes a build.
type Result struct {
	Pages    int
	Duration time.Duration
}

// Build plans every page of snap and writes them, one goroutine per language.
func (g *Generator) Build(ctx context.Context, snap *entity.Snapshot) (Result, error) {
	start := time.Now()
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pages, err := Plan(snap, PlanOptions{Resolver: g.Options.Site, Development: g.Dev})
	if err != nil {
		return Result{}, err
	}

	renderer := g.Renderer
	if renderer == nil {
		fsys := g.Templates
		if fsys == nil {
			fsys = Templates()
		}
		if renderer, err = NewRenderer(fsys); err != nil {
			return Result{}, err
		}
	}
	views := NewViews(snap, g.Site, g.Options, g.Markdown)

	byLang := make(map[string][]Page)
	var order []string
	for _, p := range pages {
		if _, ok := byLang[p.Language]; !ok {
			order = append(order, p.Language)
		}
		byLang[p.Language] = append(byLang[p.Language], p)
	}

	grp, ctx := errgroup.WithContext(ctx)
	if g.Parallel > 0 {
		grp.SetLimit(g.Parallel)
	}
	for _, lang := range order {
		langPages := byLang[lang]
		grp.Go(func() error {
			for _, page := range langPages {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := g.write(renderer, views, page); err != nil {
					return err
				}
			}
			logger.Info("language built", zap.String("lang", lang), zap.Int("pages", len(langPages)))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: len(pages), Duration: time.Since(start)}
	if g.Metrics != nil {
		g.Metrics.BuildDuration.Observe(res.Duration.Seconds())
	}
	logger.Info("site built", zap.Int("pages", res.Pages), zap.Duration("duration", res.Duration))
	return res, nil
}

func (g *Generator) write(renderer *Renderer, views *Views, page Page) error {
	target, err := OutputPath(g.OutDir, page.Path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, page.Kind, views.View(page)); err != nil {
		return fmt.Errorf("render %s: %w", page.Path, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	if g.Metrics != nil {
		g.Metrics.PagesRendered.WithLabelValues(page.Language, string(page.Kind)).Inc()
	}
	return nil
}
