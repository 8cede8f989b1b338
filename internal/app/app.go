// Package app wires configuration, storage, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/insight-backend/internal/adapter/mail"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres"
	insightrepo "github.com/heartmarshall/insight-backend/internal/adapter/postgres/insight"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/insight-backend/internal/auth"
	"github.com/heartmarshall/insight-backend/internal/config"
	"github.com/heartmarshall/insight-backend/internal/metrics"
	authsvc "github.com/heartmarshall/insight-backend/internal/service/auth"
	"github.com/heartmarshall/insight-backend/internal/service/export"
	"github.com/heartmarshall/insight-backend/internal/service/insight"
	"github.com/heartmarshall/insight-backend/internal/sqltemplate"
	"github.com/heartmarshall/insight-backend/internal/transport/middleware"
	"github.com/heartmarshall/insight-backend/internal/transport/rest"
)

// Run loads configuration, connects to the database and serves HTTP until
// ctx is cancelled or the process receives SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, "server")
	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.Database.SkipMigrations {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := NewServer(cfg, logger, pool, reg)
	defer server.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      server.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// Server is the assembled HTTP handler and the background resources it owns.
type Server struct {
	Handler http.Handler
	limiter *middleware.RateLimiter
}

// Close stops background work started by NewServer. It does not close the pool.
func (s *Server) Close() {
	s.limiter.Stop()
}

// NewServer builds repositories, services and the router on top of pool.
// Metrics are registered on reg and served from it.
func NewServer(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, reg *prometheus.Registry) *Server {
	templates := sqltemplate.Embedded()
	if cfg.Insight.TemplateDir != "" {
		templates = sqltemplate.Dir(cfg.Insight.TemplateDir)
	}
	m := metrics.New(reg)

	// Repositories.
	insightRepo := insightrepo.New(pool, m)
	userRepo := user.New(pool)
	tokenRepo := token.New(pool)
	txm := postgres.NewTxManager(pool)

	// Services.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.ResetTokenTTL)
	authService := authsvc.NewService(logger, userRepo, tokenRepo, txm, jwtManager, newMailer(cfg.Mail, logger), cfg.Auth)
	insightService := insight.NewService(logger, templates, insightRepo, insightRepo, insight.Limits{
		DefaultLimit: cfg.Insight.DefaultLimit,
		MaxLimit:     cfg.Insight.MaxLimit,
		MaxTrendDays: cfg.Insight.MaxTrendDays,
	})
	exportService := export.NewService(logger, insightRepo, m, cfg.Export)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	router := newRouter(routerDeps{
		cfg:       cfg,
		log:       logger,
		auth:      rest.NewAuthHandler(authService, logger),
		insight:   rest.NewInsightHandler(insightService, logger),
		export:    rest.NewExportHandler(exportService, logger),
		health:    rest.NewHealthHandler(pool, templates, BuildVersion()),
		validator: authService,
		observer:  m,
		gatherer:  reg,
		limiter:   limiter,
	})

	return &Server{Handler: router, limiter: limiter}
}

type mailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

func newMailer(cfg config.MailConfig, logger *slog.Logger) mailSender {
	if cfg.Host == "" {
		logger.Warn("mail.host not set, reset emails are logged instead of sent")
		return mail.NewLogSender(logger)
	}
	return mail.NewSender(cfg)
}
