package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/entity"
)

// AirtableSource fetches every content table and assembles a snapshot.
type AirtableSource struct {
	lister RecordLister
	site   *config.Site
	logger *zap.Logger
	now    func() time.Time
}

// NewAirtableSource builds a source reading the tables named in site.
func NewAirtableSource(lister RecordLister, site *config.Site, logger *zap.Logger) *AirtableSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AirtableSource{lister: lister, site: site, logger: logger, now: time.Now}
}

// Load implements Source.
func (s *AirtableSource) Load(ctx context.Context) (*entity.Snapshot, error) {
	var (
		mu  sync.Mutex
		raw = make(map[tableKind][]Record, len(allKinds))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range allKinds {
		name := tableName(s.site.Tables, kind)
		if name == "" {
			continue
		}
		g.Go(func() error {
			started := time.Now()
			records, err := s.lister.ListRecords(gctx, name)
			if err != nil {
				return fmt.Errorf("list %s: %w", name, err)
			}
			s.logger.Debug("table fetched",
				zap.String("table", name),
				zap.Int("records", len(records)),
				zap.Duration("took", time.Since(started)),
			)
			mu.Lock()
			raw[kind] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap, err := newResolver(s.site, raw).snapshot()
	if err != nil {
		return nil, err
	}
	snap.FetchedAt = s.now().UTC()
	s.logger.Info("content fetched",
		zap.Int("businesses", len(snap.Businesses)),
		zap.Int("cities", len(snap.Cities)),
		zap.Int("translations", len(snap.Translations)),
	)
	return snap, nil
}

var (
	_ Source = (*AirtableSource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*StoreSource)(nil)
)
