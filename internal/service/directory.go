package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/i18n"
	"github.com/benknight/cocolist/internal/presenter"
)

// ErrBusinessNotFound is returned for slugs absent from the loaded snapshot.
var ErrBusinessNotFound = errors.New("business not found")

// Directory serves presenters from the most recently loaded snapshot.
type Directory struct {
	source   content.Source
	site     *config.Site
	logger   *zap.Logger
	resolver *i18n.Resolver
	opts     presenter.Options

	mu    sync.RWMutex
	state *directoryState
}

type directoryState struct {
	snapshot *entity.Snapshot
	bySlug   map[string]*entity.Business
	catalog  *i18n.Catalog
}

// NewDirectory builds an empty directory. Call Reload before serving.
func NewDirectory(source content.Source, site *config.Site, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := i18n.NewResolver(site.Languages, site.DefaultLanguage)
	return &Directory{
		source:   source,
		site:     site,
		logger:   logger,
		resolver: resolver,
		opts:     PresenterOptions(site),
		state:    newDirectoryState(&entity.Snapshot{}, site.Languages, logger),
	}
}

// PresenterOptions derives presenter settings from the site config.
func PresenterOptions(site *config.Site) presenter.Options {
	return presenter.Options{
		Site:        i18n.NewResolver(site.Languages, site.DefaultLanguage),
		Platform:    i18n.NewResolver(site.DeliveryPlatform.Languages, site.DeliveryPlatform.DefaultLanguage),
		PhoneRegion: site.PhoneRegion,
		EditFormURL: site.EditFormURL,
	}
}

func newDirectoryState(snap *entity.Snapshot, languages []string, logger *zap.Logger) *directoryState {
	state := &directoryState{
		snapshot: snap,
		bySlug:   make(map[string]*entity.Business, len(snap.Businesses)),
		catalog:  i18n.BuildCatalog(languages, snap.Translations, snap.Neighborhoods, snap.Cities),
	}
	for i := range snap.Businesses {
		b := &snap.Businesses[i]
		slug := b.Slug()
		if slug == "" {
			continue
		}
		if _, taken := state.bySlug[slug]; taken {
			logger.Warn("duplicate business slug ignored", zap.String("slug", slug), zap.String("record_id", b.RecordID))
			continue
		}
		state.bySlug[slug] = b
	}
	return state
}

// Reload replaces the served snapshot with a fresh one from the source.
func (d *Directory) Reload(ctx context.Context) error {
	snap, err := d.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	state := newDirectoryState(snap, d.site.Languages, d.logger)

	d.mu.Lock()
	d.state = state
	d.mu.Unlock()

	d.logger.Info("directory loaded",
		zap.Int("businesses", len(state.bySlug)),
		zap.Time("fetched_at", snap.FetchedAt),
	)
	return nil
}

func (d *Directory) current() *directoryState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Resolver returns the site path resolver.
func (d *Directory) Resolver() *i18n.Resolver { return d.resolver }

// Catalog returns the message catalog of the loaded snapshot.
func (d *Directory) Catalog() *i18n.Catalog { return d.current().catalog }

// FetchedAt reports when the loaded snapshot was fetched.
func (d *Directory) FetchedAt() time.Time { return d.current().snapshot.FetchedAt }

// Business presents the business with slug in lang. Unsupported languages
// fall back to the default.
func (d *Directory) Business(slug, lang string) (*presenter.Business, error) {
	b, ok := d.current().bySlug[slug]
	if !ok {
		return nil, ErrBusinessNotFound
	}
	if !d.resolver.Supported(lang) {
		lang = d.resolver.Default()
	}
	return presenter.New(b, lang, d.opts), nil
}

// View presents the business and localizes its place names.
func (d *Directory) View(slug, lang string) (presenter.View, error) {
	p, err := d.Business(slug, lang)
	if err != nil {
		return presenter.View{}, err
	}
	catalog := d.Catalog()
	return p.View(func(key string) string { return catalog.Message(p.Language(), key) }), nil
}

// ReviewKey returns the key reviews of slug are stored under: the business
// path in the default language.
func (d *Directory) ReviewKey(slug string) (string, error) {
	p, err := d.Business(slug, d.resolver.Default())
	if err != nil {
		return "", err
	}
	return p.URL(), nil
}
