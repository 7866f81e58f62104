// Command qabristan runs the cemetery record keeper on a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/ai"
	"github.com/qabristan-app/qabristan/internal/config"
	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/migrate"
	"github.com/qabristan-app/qabristan/internal/repository"
	"github.com/qabristan-app/qabristan/internal/repository/localfile"
	"github.com/qabristan-app/qabristan/internal/repository/postgres"
	"github.com/qabristan-app/qabristan/internal/ui"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, opens the selected record store variant, and
// hands control to the shell.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}

	// Flags override the environment.
	store := flag.String("store", cfg.Store, "record store variant: local or postgres")
	dataDir := flag.String("data-dir", cfg.DataDir, "data directory for the local store")
	dsn := flag.String("dsn", cfg.DatabaseDSN, "PostgreSQL DSN for the postgres store")
	model := flag.String("model", cfg.GeminiModel, "Gemini model name")
	flag.Parse()
	cfg.Store = *store
	cfg.DataDir = *dataDir
	cfg.DatabaseDSN = *dsn
	cfg.GeminiModel = *model

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("store", cfg.Store),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recordStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open record store", zap.Error(err))
	}
	defer func() { _ = recordStore.Close() }()

	var gen ai.TextGenerator
	var ext ai.RecordExtractor
	client, err := ai.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, errs.ErrAINotConfigured):
		logger.Warn("GEMINI_API_KEY not set; scan, suggest, and analysis are disabled")
	case err != nil:
		logger.Fatal("gemini client", zap.Error(err))
	default:
		gen, ext = client, client
	}

	shell := ui.New(recordStore, gen, ext, logger, os.Stdin, os.Stdout)
	if err := shell.Run(ctx); err != nil {
		logger.Fatal("shell", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

// openStore selects the persistence variant. The postgres variant runs its
// migrations first.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.RecordStore, error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
			return nil, err
		}
		return postgres.Open(ctx, cfg.DatabaseDSN, logger)
	default:
		return localfile.Open(cfg.DataDir)
	}
}
