// Package insight serves the dashboard: it renders query templates, runs
// them and reshapes the rows into response objects.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/insight-backend/internal/domain"
	"github.com/heartmarshall/insight-backend/internal/sqltemplate"
)

// Template names under the template store root.
const (
	tplDashboardSummary    = "com/jumper/insight/dashboard_summary"
	tplSurprisePatterns    = "com/jumper/insight/surprise_patterns"
	tplHeatmap             = "com/jumper/insight/engagement_heatmap"
	tplContentPerformance  = "com/jumper/insight/content_performance"
	tplTopEngagements      = "com/jumper/insight/top_engagements"
	tplEngagementTrend     = "com/jumper/insight/engagement_trend"
	tplOpportunityAreas    = "com/jumper/insight/opportunity_areas"
	tplAdvancedPatterns    = "com/jumper/insight/advanced_patterns"
	tplScatterPerformance  = "com/jumper/insight/scatter_performance"
	tplAuthorCategoryTrend = "com/jumper/insight/engagement_trend_author_category"
)

type templates interface {
	Render(name string, params sqltemplate.Params) (sqltemplate.Query, error)
}

type executor interface {
	Select(ctx context.Context, dst any, q sqltemplate.Query) error
	Get(ctx context.Context, dst any, q sqltemplate.Query) error
}

type catalogRepo interface {
	AuthorIDByName(ctx context.Context, name string) (int64, error)
	PostIDByTitle(ctx context.Context, title string) (int64, error)
	ListAuthors(ctx context.Context) ([]domain.AuthorRef, error)
	ListPosts(ctx context.Context) ([]domain.PostRef, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service implements the dashboard operations.
type Service struct {
	log       *slog.Logger
	templates templates
	db        executor
	catalog   catalogRepo
	limits    Limits
	now       func() time.Time
}

// NewService creates a new insight service.
func NewService(logger *slog.Logger, tpl templates, db executor, catalog catalogRepo, limits Limits) *Service {
	return &Service{
		log:       logger.With("service", "insight"),
		templates: tpl,
		db:        db,
		catalog:   catalog,
		limits:    limits,
		now:       time.Now,
	}
}

func (s *Service) selectInto(ctx context.Context, dst any, name string, params sqltemplate.Params) error {
	q, err := s.templates.Render(name, params)
	if err != nil {
		return err
	}
	return s.db.Select(ctx, dst, q)
}

// Summary returns the headline dashboard numbers. An empty database yields
// a zero summary.
func (s *Service) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	q, err := s.templates.Render(tplDashboardSummary, nil)
	if err != nil {
		return nil, fmt.Errorf("insight.Summary: %w", err)
	}

	var out domain.DashboardSummary
	if err := s.db.Get(ctx, &out, q); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.DashboardSummary{}, nil
		}
		return nil, fmt.Errorf("insight.Summary: %w", err)
	}
	return &out, nil
}

// AdvancedInsights returns the surprise patterns, each with a recommendation.
func (s *Service) AdvancedInsights(ctx context.Context) ([]domain.AdvancedInsight, error) {
	var out []domain.AdvancedInsight
	if err := s.selectInto(ctx, &out, tplSurprisePatterns, nil); err != nil {
		return nil, fmt.Errorf("insight.AdvancedInsights: %w", err)
	}
	for i := range out {
		out[i].Recommendation = Recommendation(out[i].InsightType)
	}
	return out, nil
}

// Heatmap returns engagement counts by hour of day and weekday.
func (s *Service) Heatmap(ctx context.Context, period string) (domain.Heatmap, error) {
	w, err := ParsePeriod(period, s.now())
	if err != nil {
		return nil, err
	}

	var rows []heatmapRow
	if err := s.selectInto(ctx, &rows, tplHeatmap, w.params()); err != nil {
		return nil, fmt.Errorf("insight.Heatmap: %w", err)
	}
	return buildHeatmap(rows), nil
}

// ContentPerformance returns per-post performance for posts at least
// minLength characters long (default 500).
func (s *Service) ContentPerformance(ctx context.Context, minLength *int) ([]domain.ContentPerformance, error) {
	n, err := minContentLength(minLength)
	if err != nil {
		return nil, err
	}

	var out []domain.ContentPerformance
	if err := s.selectInto(ctx, &out, tplContentPerformance, sqltemplate.Params{"min_content_length": n}); err != nil {
		return nil, fmt.Errorf("insight.ContentPerformance: %w", err)
	}
	return out, nil
}

// TopEngagements returns the best author/category pairs inside the period.
func (s *Service) TopEngagements(ctx context.Context, period string, limit *int) ([]domain.EngagementSummary, error) {
	w, err := ParsePeriod(period, s.now())
	if err != nil {
		return nil, err
	}
	n, err := s.limits.limit(limit)
	if err != nil {
		return nil, err
	}

	params := w.params()
	params["limit"] = n

	var out []domain.EngagementSummary
	if err := s.selectInto(ctx, &out, tplTopEngagements, params); err != nil {
		return nil, fmt.Errorf("insight.TopEngagements: %w", err)
	}
	s.log.DebugContext(ctx, "top engagements",
		slog.String("period", period),
		slog.Int("limit", n),
		slog.Int("rows", len(out)))
	return out, nil
}

// EngagementTrend returns the daily series for one author, post or category
// over the last days (default 365). Days without engagements are omitted.
func (s *Service) EngagementTrend(ctx context.Context, sel TrendSelector, days *int) ([]domain.TrendPoint, error) {
	n, err := s.limits.days(days)
	if err != nil {
		return nil, err
	}
	cond, err := sel.Resolve(ctx, s.catalog)
	if err != nil {
		return nil, err
	}

	params := LastDays(s.now(), n).params()
	params["entity_condition"] = cond

	var rows []trendRow
	if err := s.selectInto(ctx, &rows, tplEngagementTrend, params); err != nil {
		return nil, fmt.Errorf("insight.EngagementTrend: %w", err)
	}
	out, err := buildTrend(rows, true)
	if err != nil {
		return nil, fmt.Errorf("insight.EngagementTrend: %w", err)
	}
	return out, nil
}

// Authors lists every author ordered by name.
func (s *Service) Authors(ctx context.Context) ([]domain.AuthorRef, error) {
	out, err := s.catalog.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("insight.Authors: %w", err)
	}
	return out, nil
}

// Posts lists every post ordered by id.
func (s *Service) Posts(ctx context.Context) ([]domain.PostRef, error) {
	out, err := s.catalog.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("insight.Posts: %w", err)
	}
	return out, nil
}

// Categories lists the distinct post categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	out, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("insight.Categories: %w", err)
	}
	return out, nil
}

// OpportunityAreas returns high-volume, low-engagement pairings with at
// least threshold posts (default 2).
func (s *Service) OpportunityAreas(ctx context.Context, threshold *int) ([]domain.OpportunityArea, error) {
	n, err := minPosts(threshold)
	if err != nil {
		return nil, err
	}

	var out []domain.OpportunityArea
	if err := s.selectInto(ctx, &out, tplOpportunityAreas, sqltemplate.Params{"min_posts": n}); err != nil {
		return nil, fmt.Errorf("insight.OpportunityAreas: %w", err)
	}
	return out, nil
}

// AdvancedPatterns returns behavioural and content patterns. Any failure is
// logged and answered with DefaultPatterns.
func (s *Service) AdvancedPatterns(ctx context.Context) domain.Patterns {
	var rows []patternRow
	if err := s.selectInto(ctx, &rows, tplAdvancedPatterns, nil); err != nil {
		s.log.ErrorContext(ctx, "advanced patterns query failed", slog.String("error", err.Error()))
		return DefaultPatterns()
	}

	out, err := parsePatterns(rows)
	if err != nil {
		s.log.ErrorContext(ctx, "advanced patterns payload invalid", slog.String("error", err.Error()))
		return DefaultPatterns()
	}
	return out
}

// ScatterPerformance returns post volume against engagements per post,
// grouped by author (default) or author category.
func (s *Service) ScatterPerformance(ctx context.Context, period, entityType string) ([]domain.ScatterPoint, error) {
	w, err := ParsePeriod(period, s.now())
	if err != nil {
		return nil, err
	}
	if entityType == "" {
		entityType = DefaultScatterType
	}
	id, name, groupBy, err := scatterGrouping(entityType)
	if err != nil {
		return nil, err
	}

	params := w.params()
	params["entity_id"] = id
	params["entity_name"] = name
	params["group_by"] = groupBy

	var rows []scatterRow
	if err := s.selectInto(ctx, &rows, tplScatterPerformance, params); err != nil {
		return nil, fmt.Errorf("insight.ScatterPerformance: %w", err)
	}
	return buildScatter(entityType, rows), nil
}

// EngagementTrendAuthorCategory returns the daily series per author over the
// last days (default 365). Every returned row is kept.
func (s *Service) EngagementTrendAuthorCategory(ctx context.Context, days *int) ([]domain.AuthorCategoryTrendPoint, error) {
	n, err := s.limits.days(days)
	if err != nil {
		return nil, err
	}

	var rows []authorCategoryTrendRow
	if err := s.selectInto(ctx, &rows, tplAuthorCategoryTrend, LastDays(s.now(), n).params()); err != nil {
		return nil, fmt.Errorf("insight.EngagementTrendAuthorCategory: %w", err)
	}
	out, err := buildAuthorCategoryTrend(rows)
	if err != nil {
		return nil, fmt.Errorf("insight.EngagementTrendAuthorCategory: %w", err)
	}
	return out, nil
}
