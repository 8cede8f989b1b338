// Command cleanup prunes the export workspace: staged archives left behind by
// interrupted downloads are removed once they are older than the retention.
// Run it from cron; the server never schedules it.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/insight-backend/internal/app"
	"github.com/heartmarshall/insight-backend/internal/config"
	"github.com/heartmarshall/insight-backend/internal/service/export"
)

func main() {
	retention := flag.Duration("retention", 0, "override export.workspace_retention")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *retention > 0 {
		cfg.Export.WorkspaceRetention = *retention
	}

	os.Exit(run(app.NewLogger(cfg.Log, "cleanup"), cfg.Export))
}

func run(logger *slog.Logger, cfg config.ExportConfig) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Only the filesystem is touched, so there is no dumper or observer.
	removed, err := export.NewService(logger, nil, nil, cfg).PruneWorkspace(ctx, time.Now())
	dirLog := logger.With(slog.String("dir", cfg.WorkspaceDir))
	if err != nil {
		dirLog.Error("workspace prune failed", slog.Int("removed", removed), slog.String("error", err.Error()))
		return 1
	}

	dirLog.Info("workspace prune completed",
		slog.Int("removed", removed),
		slog.Duration("retention", cfg.WorkspaceRetention))
	return 0
}
