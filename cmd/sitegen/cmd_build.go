package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/service"
	"github.com/benknight/cocolist/internal/sitegen"
)

var (
	outDir       string
	templatesDir string
	parallel     int
	devMode      bool
)

// checkCmd validates the snapshot without rendering
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the snapshot for duplicate business URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("checking for URL key duplicates", zap.Int("records", len(snap.Businesses)))
		if err := content.CheckSlugs(snap.Businesses); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "no duplicate URLs")
		return nil
	},
}

// buildCmd renders every page of the snapshot
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site",
	Long: `Renders the home, city, list and business pages for every language
into --out. In development (SITE_ENV=development or --dev) only the
default language is built.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := newGenerator()
		return rebuild(cmd.Context(), gen)
	},
}

// watchCmd rebuilds whenever the snapshot or templates change
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site on snapshot or template changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gen := newGenerator()
		if err := rebuild(ctx, gen); err != nil {
			log.Error("initial build failed", zap.Error(err))
		}

		paths := []string{snapshotPath}
		if templatesDir != "" {
			paths = append(paths, templatesDir)
		}
		w := sitegen.NewWatcher(func(ctx context.Context) error { return rebuild(ctx, gen) }, log, paths...)
		return w.Run(ctx)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{buildCmd, watchCmd} {
		cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default $PUBLIC_DIR)")
		cmd.Flags().StringVar(&templatesDir, "templates", "", "template directory overriding the built-in templates")
		cmd.Flags().IntVar(&parallel, "parallel", 0, "languages rendered at once (0 = all)")
		cmd.Flags().BoolVar(&devMode, "dev", false, "build the default language only")
	}
}

func newGenerator() *sitegen.Generator {
	if outDir == "" {
		outDir = cfg.PublicDir
	}
	gen := &sitegen.Generator{
		Site:     site,
		Options:  service.PresenterOptions(site),
		Logger:   log,
		OutDir:   outDir,
		Dev:      devMode || cfg.Development(),
		Parallel: parallel,
	}
	if templatesDir != "" {
		gen.Templates = os.DirFS(templatesDir)
	}
	return gen
}

func rebuild(ctx context.Context, gen *sitegen.Generator) error {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	_, err = gen.Build(ctx, snap)
	return err
}
