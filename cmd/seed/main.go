// Command seed loads <table>.csv files into the records schema. Tables that
// already contain rows are skipped, so the command is safe to rerun.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--dir            directory with the CSV files (overrides SEEDER_DIR)
//	--dry-run        parse files without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/insight-backend/internal/adapter/postgres"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/records"
	"github.com/heartmarshall/insight-backend/internal/app"
	"github.com/heartmarshall/insight-backend/internal/config"
	"github.com/heartmarshall/insight-backend/internal/seeder"
)

func main() {
	dirFlag := flag.String("dir", "", "directory with <table>.csv files")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log, "seed")

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dirFlag != "" {
		seederCfg.Dir = *dirFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	if code := run(logger, appCfg, *seederCfg); code != 0 {
		os.Exit(code)
	}
}

func run(logger *slog.Logger, appCfg *config.Config, seederCfg seeder.Config) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if !appCfg.Database.SkipMigrations {
		if err := postgres.Migrate(ctx, appCfg.Database.DSN, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			return 1
		}
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, records.New(pool), seederCfg)
	if err := pipeline.Run(ctx); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		return 1
	}
	if pipeline.HasErrors() {
		logger.Warn("seed completed with errors")
		return 1
	}

	logger.Info("seed completed", slog.String("dir", seederCfg.Dir), slog.Bool("dry_run", seederCfg.DryRun))
	return 0
}
