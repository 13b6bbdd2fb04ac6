package main // Entry point package

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"      // loads .env files into the environment
	"github.com/labstack/echo/v4"   // Echo web framework
	"github.com/urfave/cli/v3"      // command-line interface

	"github.com/iliyamo/music-licensing/internal/config"
	"github.com/iliyamo/music-licensing/internal/database"
	"github.com/iliyamo/music-licensing/internal/handler"
	"github.com/iliyamo/music-licensing/internal/licensing"
	mw "github.com/iliyamo/music-licensing/internal/middleware"
	"github.com/iliyamo/music-licensing/internal/queue"
	"github.com/iliyamo/music-licensing/internal/repository"
	"github.com/iliyamo/music-licensing/internal/router"
	"github.com/iliyamo/music-licensing/internal/utils"
)

func main() {
	logger := utils.NewLogger(nil)

	// A missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "registry",
		Usage: "Music licensing registry server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run database migrations and start the HTTP server",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return serve(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Create the registry schema and exit",
				Action: func(ctx context.Context, _ *cli.Command) error {
					cfg := config.Load()
					db, err := openDB(ctx, cfg)
					if err != nil {
						return err
					}
					defer db.Close()
					logger.Info("schema ready", "driver", cfg.DBDriver)
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// openDB opens the configured database and applies migrations.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	dsn := cfg.DBPath
	if cfg.DBDriver == "mysql" {
		dsn = database.MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	db, err := database.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func serve(ctx context.Context) error {
	logger := utils.NewLogger(nil)
	cfg := config.Load()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	songs := repository.NewSongRepo(db)
	owners := repository.NewOwnerRepo(db)
	licenses := repository.NewLicenseRepo(db)
	licensees := repository.NewLicenseeRepo(db)
	ids := repository.NewIDRepo(db)

	svc := licensing.NewService(songs, owners, licenses, licensees, ids, logger)
	h := handler.NewHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.Use(mw.RequestID())

	// Redis is optional: without it, caching and rate limiting degrade
	// to pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limiting disabled")
	}
	e.Use(mw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(mw.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterRegistry(e, h)

	// The audit consumer runs for the life of the process and handles
	// broker reconnects itself.
	go func() {
		if err := queue.StartLicenseConsumer(); err != nil {
			logger.Error("license consumer stopped", "err", err)
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
	return e.Start(addr)
}
