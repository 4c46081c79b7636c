package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/database"
	"github.com/benknight/cocolist/internal/repository"
)

var (
	syncStore bool
	syncKeep  int
)

// syncCmd pulls every content table from Airtable into the snapshot file
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch content from Airtable into the snapshot",
	Long: `Fetches every configured Airtable table, resolves linked records and
attachments, and writes the result to the snapshot file.

With --store the snapshot is also saved to Postgres for the API, keeping
the newest --keep snapshots.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncStore, "store", false, "also save the snapshot to DATABASE_URL")
	syncCmd.Flags().IntVar(&syncKeep, "keep", 10, "stored snapshots to keep")
}

func runSync(cmd *cobra.Command, args []string) error {
	if cfg.AirtableAPIKey == "" || cfg.AirtableBaseID == "" {
		return errors.New("AIRTABLE_API_KEY and AIRTABLE_BASE_ID must be set")
	}
	ctx := cmd.Context()
	start := time.Now()

	client := content.NewAirtableClient(&http.Client{Timeout: 30 * time.Second},
		cfg.AirtableBaseURL, cfg.AirtableBaseID, cfg.AirtableAPIKey, cfg.AirtableRate)
	snap, err := content.NewAirtableSource(client, site, log).Load(ctx)
	if err != nil {
		return err
	}

	var dup *content.DuplicateSlugError
	if err := content.CheckSlugs(snap.Businesses); errors.As(err, &dup) {
		log.Warn("snapshot has duplicate slugs", zap.Error(err))
	}

	if err := content.NewFileSource(snapshotPath).Save(snap); err != nil {
		return err
	}
	log.Info("snapshot written",
		zap.String("path", snapshotPath),
		zap.Int("records", len(snap.Businesses)),
		zap.Duration("duration", time.Since(start)),
	)

	if !syncStore {
		return nil
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabasePool)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewPGXSnapshotRepository(pool)
	id, err := repo.Save(ctx, snap)
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	pruned, err := repo.Prune(ctx, syncKeep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	log.Info("snapshot stored", zap.Int64("id", id), zap.Int64("pruned", pruned))
	return nil
}
