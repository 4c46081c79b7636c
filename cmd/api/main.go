package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/auth"
	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/content"
	"github.com/benknight/cocolist/internal/database"
	"github.com/benknight/cocolist/internal/handler"
	"github.com/benknight/cocolist/internal/logger"
	"github.com/benknight/cocolist/internal/metrics"
	middlewarepkg "github.com/benknight/cocolist/internal/middleware"
	"github.com/benknight/cocolist/internal/repository"
	"github.com/benknight/cocolist/internal/router"
	"github.com/benknight/cocolist/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "cocolist-api", Env: cfg.SiteEnv})
	defer func() { _ = log.Sync() }()

	site, err := config.LoadSite(cfg.SiteConfig)
	if err != nil {
		log.Fatal("failed to load site config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabasePool)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	mongoClient, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	snapshotsRepo := repository.NewPGXSnapshotRepository(pool)
	reviewsRepo := repository.NewMongoReviewsRepository(mongoClient.Database(cfg.MongoDatabase), cfg.ReviewCollection)
	if err := reviewsRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create review indexes", zap.Error(err))
	}

	directory, err := loadDirectory(ctx, cfg, site, snapshotsRepo, log)
	if err != nil {
		log.Fatal("failed to load directory", zap.Error(err))
	}
	m.DirectoryLoaded.Set(float64(directory.FetchedAt().Unix()))

	authService := service.NewAuthService(usersRepo, jwtManager)
	reviewService := service.NewReviewService(reviewsRepo, directory)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(middlewarepkg.Metrics(m))
	e.Use(echoMiddleware.Recover())

	router.Register(e, router.Dependencies{
		Config:   cfg,
		JWT:      jwtManager,
		Resolver: directory.Resolver(),
		Metrics:  m,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Businesses: handler.NewBusinessHandler(directory),
		Reviews:    handler.NewReviewHandler(reviewService, m, log),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Info("api listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case sig := <-quit:
			if sig == syscall.SIGHUP {
				reloadCtx, reloadCancel := context.WithTimeout(context.Background(), 30*time.Second)
				if err := directory.Reload(reloadCtx); err != nil {
					log.Error("directory reload failed", zap.Error(err))
				} else {
					m.DirectoryLoaded.Set(float64(directory.FetchedAt().Unix()))
				}
				reloadCancel()
				continue
			}
			log.Info("shutting down", zap.String("signal", sig.String()))
		case err := <-serverErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("server error", zap.Error(err))
			}
			return
		}
		break
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadDirectory serves the latest stored snapshot, or the snapshot file while
// nothing has been synced to the database. Every reload asks the store again.
func loadDirectory(ctx context.Context, cfg *config.Config, site *config.Site, store content.SnapshotReader, log *zap.Logger) (*service.Directory, error) {
	source := content.NewFallbackSource(
		content.NewStoreSource(store),
		content.NewFileSource(cfg.SnapshotPath),
		func(err error) bool { return errors.Is(err, repository.ErrSnapshotNotFound) },
		log,
	)
	directory := service.NewDirectory(source, site, log)
	if err := directory.Reload(ctx); err != nil {
		return nil, err
	}
	return directory, nil
}
