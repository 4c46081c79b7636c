package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DocumentsPath is the endpoint documents are posted to.
const DocumentsPath = "/documents"

const defaultBatchSize = 100

// Indexer posts documents in batches.
type Indexer struct {
	poster    Poster
	batchSize int
	logger    *zap.Logger
}

// NewIndexer builds an indexer. A non-positive batchSize uses the default.
func NewIndexer(poster Poster, batchSize int, logger *zap.Logger) *Indexer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{poster: poster, batchSize: batchSize, logger: logger}
}

type indexRequest struct {
	Documents []Document `json:"documents"`
}

// Index sends every document and returns how many were accepted. It stops at
// the first failed batch.
func (ix *Indexer) Index(ctx context.Context, docs []Document, requestID string) (int, error) {
	sent := 0
	for start := 0; start < len(docs); start += ix.batchSize {
		end := min(start+ix.batchSize, len(docs))
		batch := docs[start:end]
		if _, err := ix.poster.PostJSON(ctx, DocumentsPath, indexRequest{Documents: batch}, requestID); err != nil {
			return sent, fmt.Errorf("index batch %d-%d: %w", start, end, err)
		}
		sent += len(batch)
		ix.logger.Debug("search batch indexed", zap.Int("from", start), zap.Int("to", end))
	}
	ix.logger.Info("search documents indexed", zap.Int("documents", sent))
	return sent, nil
}
