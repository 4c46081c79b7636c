package main

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/i18n"
	"github.com/benknight/cocolist/internal/search"
	"github.com/benknight/cocolist/internal/service"
)

var indexBatch int

// indexCmd pushes one search document per business and language
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Send search documents to the search service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.SearchBaseURL == "" {
			return errors.New("SEARCH_BASE_URL must be set")
		}
		ctx := cmd.Context()
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}

		catalog := i18n.BuildCatalog(site.Languages, snap.Translations, snap.Neighborhoods, snap.Cities)
		docs := search.BuildDocuments(snap, site.Languages, service.PresenterOptions(site), catalog)

		client, err := search.NewClient(ctx, nil, cfg.SearchBaseURL)
		if err != nil {
			return err
		}
		requestID := uuid.NewString()
		n, err := search.NewIndexer(client, indexBatch, log).Index(ctx, docs, requestID)
		if err != nil {
			return err
		}
		log.Info("index finished", zap.Int("documents", n), zap.Int("total", len(docs)), zap.String("request_id", requestID))
		return nil
	},
}

func init() {
	indexCmd.Flags().IntVar(&indexBatch, "batch", 100, "documents per request")
}
