package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/logger"
)

var (
	// Global flags
	siteConfigPath string
	snapshotPath   string
	verbose        bool

	cfg  *config.Config
	site *config.Site
	log  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Build the Cocolist directory site",
	Long: `sitegen syncs directory content from Airtable into a snapshot,
checks it, renders the static site and feeds the search index.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if siteConfigPath == "" {
			siteConfigPath = cfg.SiteConfig
		}
		if snapshotPath == "" {
			snapshotPath = cfg.SnapshotPath
		}
		site, err = config.LoadSite(siteConfigPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log = logger.New(logger.Options{Level: level, Format: cfg.LogFormat, Service: "cocolist-sitegen", Env: cfg.SiteEnv})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteConfigPath, "site-config", "", "site config file (default $SITE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "snapshot file (default $SNAPSHOT_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(syncCmd, checkCmd, buildCmd, watchCmd, indexCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps command errors to process status codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func loadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	snap, err := content.NewFileSource(snapshotPath).Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("snapshot loaded",
		zap.String("path", snapshotPath),
		zap.Int("records", len(snap.Businesses)),
		zap.Time("fetched_at", snap.FetchedAt),
	)
	return snap, nil
}
