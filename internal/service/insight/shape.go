package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

type heatmapRow struct {
	HourOfDay       int     `db:"hour_of_day"`
	DayOfWeek       int     `db:"day_of_week"`
	EngagementCount int64   `db:"engagement_count"`
	Intensity       float64 `db:"engagement_intensity"`
	Views           int64   `db:"views"`
	Likes           int64   `db:"likes"`
	Comments        int64   `db:"comments"`
	Shares          int64   `db:"shares"`
}

// EngagementDate is left untyped: drivers and fixtures hand back either a
// time.Time or an ISO-8601 string.
type trendRow struct {
	EngagementDate   any   `db:"engagement_date"`
	Views            int64 `db:"views"`
	Likes            int64 `db:"likes"`
	Comments         int64 `db:"comments"`
	Shares           int64 `db:"shares"`
	TotalEngagements int64 `db:"total_engagements"`
}

type authorCategoryTrendRow struct {
	EngagementDate   any    `db:"engagement_date"`
	AuthorName       string `db:"author_name"`
	Category         string `db:"category"`
	Views            int64  `db:"views"`
	Likes            int64  `db:"likes"`
	Comments         int64  `db:"comments"`
	Shares           int64  `db:"shares"`
	TotalEngagements int64  `db:"total_engagements"`
}

type scatterRow struct {
	EntityID           string  `db:"entity_id"`
	EntityName         string  `db:"entity_name"`
	PostCount          int64   `db:"post_count"`
	EngagementsPerPost float64 `db:"engagements_per_post"`
}

type patternRow struct {
	InsightType string `db:"insight_type"`
	Insights    string `db:"insights"`
}

func buildHeatmap(rows []heatmapRow) domain.Heatmap {
	out := make(domain.Heatmap)
	for _, r := range rows {
		days, ok := out[r.HourOfDay]
		if !ok {
			days = make(map[int]domain.HeatmapCell)
			out[r.HourOfDay] = days
		}
		days[r.DayOfWeek] = domain.HeatmapCell{
			EngagementCount: r.EngagementCount,
			Intensity:       r.Intensity,
			Types: domain.EngagementBreakdown{
				Views:    r.Views,
				Likes:    r.Likes,
				Comments: r.Comments,
				Shares:   r.Shares,
			},
		}
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// normalizeTimestamp accepts a time.Time or an ISO-8601 string, with or
// without a trailing Z, and returns it in UTC.
func normalizeTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		if t != nil {
			return t.UTC(), nil
		}
	case string:
		s := strings.TrimSpace(t)
		if strings.HasSuffix(s, "Z") {
			s = strings.TrimSuffix(s, "Z") + "+00:00"
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", t)
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
}

// buildTrend converts rows into points. Points without engagements are
// dropped when dropEmpty is set.
func buildTrend(rows []trendRow, dropEmpty bool) ([]domain.TrendPoint, error) {
	out := make([]domain.TrendPoint, 0, len(rows))
	for _, r := range rows {
		if dropEmpty && r.TotalEngagements <= 0 {
			continue
		}
		ts, err := normalizeTimestamp(r.EngagementDate)
		if err != nil {
			return nil, fmt.Errorf("engagement_date: %w", err)
		}
		out = append(out, domain.TrendPoint{
			EngagementDate: ts,
			Engagements: domain.EngagementBreakdown{
				Views: r.Views, Likes: r.Likes, Comments: r.Comments, Shares: r.Shares,
			},
			TotalEngagements: r.TotalEngagements,
		})
	}
	return out, nil
}

func buildAuthorCategoryTrend(rows []authorCategoryTrendRow) ([]domain.AuthorCategoryTrendPoint, error) {
	out := make([]domain.AuthorCategoryTrendPoint, 0, len(rows))
	for _, r := range rows {
		ts, err := normalizeTimestamp(r.EngagementDate)
		if err != nil {
			return nil, fmt.Errorf("engagement_date: %w", err)
		}
		out = append(out, domain.AuthorCategoryTrendPoint{
			EngagementDate: ts,
			AuthorName:     r.AuthorName,
			Category:       r.Category,
			Engagements: domain.EngagementBreakdown{
				Views: r.Views, Likes: r.Likes, Comments: r.Comments, Shares: r.Shares,
			},
			TotalEngagements: r.TotalEngagements,
		})
	}
	return out, nil
}

func buildScatter(entityType string, rows []scatterRow) []domain.ScatterPoint {
	out := make([]domain.ScatterPoint, len(rows))
	for i, r := range rows {
		out[i] = domain.ScatterPoint{
			EntityType:         entityType,
			EntityID:           r.EntityID,
			EntityName:         r.EntityName,
			PostCount:          r.PostCount,
			EngagementsPerPost: r.EngagementsPerPost,
		}
	}
	return out
}

var recommendations = map[string]string{
	"user_behavior":   "Create personalized content recommendations for high-diversity users",
	"content_success": "Optimize content tagging strategy and media inclusion",
	"author_growth":   "Implement author mentoring program for consistent posting",
}

// Recommendation returns the advice attached to an insight type.
func Recommendation(insightType string) string {
	if r, ok := recommendations[insightType]; ok {
		return r
	}
	return "Analyze patterns for specific recommendations"
}

func parsePatterns(rows []patternRow) (domain.Patterns, error) {
	out := make(domain.Patterns, len(rows))
	for _, r := range rows {
		var payload any
		if err := json.Unmarshal([]byte(r.Insights), &payload); err != nil {
			return nil, fmt.Errorf("insights for %s: %w", r.InsightType, err)
		}
		out[r.InsightType] = payload
	}
	return out, nil
}

// DefaultPatterns is the payload served when patterns cannot be computed.
func DefaultPatterns() domain.Patterns {
	return domain.Patterns{
		"user_behavior": map[string]any{
			"avg_diversity_score":  0,
			"high_diversity_users": 0,
			"total_analyzed_users": 0,
		},
		"content_optimization": map[string]any{
			"best_media_type":         nil,
			"promotion_effectiveness": 0,
			"optimal_tag_count":       0,
		},
	}
}
