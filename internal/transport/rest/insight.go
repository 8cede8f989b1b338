package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/insight-backend/internal/domain"
	"github.com/heartmarshall/insight-backend/internal/service/insight"
)

type insightService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
	AdvancedInsights(ctx context.Context) ([]domain.AdvancedInsight, error)
	Heatmap(ctx context.Context, period string) (domain.Heatmap, error)
	ContentPerformance(ctx context.Context, minLength *int) ([]domain.ContentPerformance, error)
	TopEngagements(ctx context.Context, period string, limit *int) ([]domain.EngagementSummary, error)
	EngagementTrend(ctx context.Context, sel insight.TrendSelector, days *int) ([]domain.TrendPoint, error)
	Authors(ctx context.Context) ([]domain.AuthorRef, error)
	Posts(ctx context.Context) ([]domain.PostRef, error)
	Categories(ctx context.Context) ([]string, error)
	OpportunityAreas(ctx context.Context, threshold *int) ([]domain.OpportunityArea, error)
	AdvancedPatterns(ctx context.Context) domain.Patterns
	ScatterPerformance(ctx context.Context, period, entityType string) ([]domain.ScatterPoint, error)
	EngagementTrendAuthorCategory(ctx context.Context, days *int) ([]domain.AuthorCategoryTrendPoint, error)
}

// InsightHandler serves the dashboard endpoints under /api/v1/insight.
type InsightHandler struct {
	svc insightService
	log *slog.Logger
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(svc insightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, log: logger.With("handler", "insight")}
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer")
	}
	return &v, nil
}

// DashboardSummary handles GET /dashboard-summary.
func (h *InsightHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(s))
}

// AdvancedInsights handles GET /advanced-insights.
func (h *InsightHandler) AdvancedInsights(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AdvancedInsights(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(i domain.AdvancedInsight) advancedInsightResponse {
		return advancedInsightResponse{
			InsightType:    i.InsightType,
			Title:          i.Title,
			Description:    i.Description,
			Metric:         i.Metric,
			Trend:          i.Trend,
			Impact:         i.Impact,
			Recommendation: i.Recommendation,
		}
	}))
}

// EngagementHeatmap handles GET /engagement-heatmap?period=.
func (h *InsightHandler) EngagementHeatmap(w http.ResponseWriter, r *http.Request) {
	hm, err := h.svc.Heatmap(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHeatmapResponse(hm))
}

// ContentPerformance handles GET /content-performance?min_content_length=.
func (h *InsightHandler) ContentPerformance(w http.ResponseWriter, r *http.Request) {
	minLength, err := queryInt(r, "min_content_length")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.ContentPerformance(r.Context(), minLength)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(c domain.ContentPerformance) contentPerformanceResponse {
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		return contentPerformanceResponse{
			PostID:           c.PostID,
			Title:            c.Title,
			ContentLength:    c.ContentLength,
			HasMedia:         c.HasMedia,
			Category:         c.Category,
			Tags:             tags,
			IsPromoted:       c.IsPromoted,
			AuthorCategory:   c.AuthorCategory,
			TotalEngagements: c.TotalEngagements,
			Views:            c.Views,
			Likes:            c.Likes,
			Comments:         c.Comments,
			Shares:           c.Shares,
			EngagementRate:   c.EngagementRate,
			QualityRatio:     c.QualityRatio,
			ContentQuality:   c.ContentQuality,
		}
	}))
}

// TopEngagements handles GET /top-engagements?period=&limit=.
func (h *InsightHandler) TopEngagements(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.TopEngagements(r.Context(), r.URL.Query().Get("period"), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(e domain.EngagementSummary) engagementSummaryResponse {
		return engagementSummaryResponse{
			AuthorID:        e.AuthorID,
			AuthorName:      e.AuthorName,
			AuthorCategory:  e.AuthorCategory,
			PostCategory:    e.PostCategory,
			TotalViews:      e.TotalViews,
			TotalLikes:      e.TotalLikes,
			TotalComments:   e.TotalComments,
			TotalShares:     e.TotalShares,
			EngagementScore: e.EngagementScore,
			EngagementRate:  e.EngagementRate,
		}
	}))
}

// EngagementTrend handles GET /engagement-trend.
func (h *InsightHandler) EngagementTrend(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	q := r.URL.Query()
	points, err := h.svc.EngagementTrend(r.Context(), insight.TrendSelector{
		EntityType:   q.Get("entity_type"),
		AuthorName:   q.Get("author_name"),
		PostTitle:    q.Get("post_title"),
		CategoryName: q.Get("category_name"),
	}, days)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(points, toTrendPointResponse))
}

// Authors handles GET /authors.
func (h *InsightHandler) Authors(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Authors(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(a domain.AuthorRef) authorResponse {
		return authorResponse{AuthorID: a.AuthorID, Name: a.Name}
	}))
}

// Posts handles GET /posts.
func (h *InsightHandler) Posts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Posts(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(p domain.PostRef) postResponse {
		return postResponse{PostID: p.PostID, Title: p.Title}
	}))
}

// Categories handles GET /categories.
func (h *InsightHandler) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Categories(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, items)
}

// OpportunityAreas handles GET /opportunity-areas?min_posts=.
func (h *InsightHandler) OpportunityAreas(w http.ResponseWriter, r *http.Request) {
	threshold, err := queryInt(r, "min_posts")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.OpportunityAreas(r.Context(), threshold)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, func(o domain.OpportunityArea) opportunityAreaResponse {
		return opportunityAreaResponse(o)
	}))
}

// AdvancedPatterns handles GET /advanced-patterns. It never fails.
func (h *InsightHandler) AdvancedPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.AdvancedPatterns(r.Context()))
}

// ScatterPerformance handles GET /scatter-performance?period=&entity_type=.
func (h *InsightHandler) ScatterPerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	points, err := h.svc.ScatterPerformance(r.Context(), q.Get("period"), q.Get("entity_type"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(points, func(p domain.ScatterPoint) scatterPointResponse {
		return scatterPointResponse(p)
	}))
}

// EngagementTrendAuthorCategory handles GET /engagement-trend-author-category?days=.
func (h *InsightHandler) EngagementTrendAuthorCategory(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	points, err := h.svc.EngagementTrendAuthorCategory(r.Context(), days)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(points, toAuthorCategoryTrendResponse))
}
