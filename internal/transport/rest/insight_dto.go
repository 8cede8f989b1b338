package rest

import (
	"time"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

type summaryResponse struct {
	TotalPosts          int64   `json:"total_posts"`
	TotalAuthors        int64   `json:"total_authors"`
	TotalEngagements    int64   `json:"total_engagements"`
	TotalViews          int64   `json:"total_views"`
	TotalLikes          int64   `json:"total_likes"`
	TotalComments       int64   `json:"total_comments"`
	TotalShares         int64   `json:"total_shares"`
	AvgEngagementRate   float64 `json:"avg_engagement_rate"`
	TopPerformingAuthor string  `json:"top_performing_author"`
	BestTimeToPost      string  `json:"best_time_to_post"`
	TopCategory         string  `json:"top_category"`
}

func toSummaryResponse(s *domain.DashboardSummary) summaryResponse {
	return summaryResponse{
		TotalPosts:          s.TotalPosts,
		TotalAuthors:        s.TotalAuthors,
		TotalEngagements:    s.TotalEngagements,
		TotalViews:          s.TotalViews,
		TotalLikes:          s.TotalLikes,
		TotalComments:       s.TotalComments,
		TotalShares:         s.TotalShares,
		AvgEngagementRate:   s.AvgEngagementRate,
		TopPerformingAuthor: s.TopPerformingAuthor,
		BestTimeToPost:      s.BestTimeToPost,
		TopCategory:         s.TopCategory,
	}
}

type advancedInsightResponse struct {
	InsightType    string  `json:"insight_type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Metric         float64 `json:"metric"`
	Trend          string  `json:"trend"`
	Impact         string  `json:"impact"`
	Recommendation string  `json:"recommendation"`
}

type typesResponse struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

type heatmapCellResponse struct {
	EngagementCount int64         `json:"engagement_count"`
	Intensity       float64       `json:"intensity"`
	Types           typesResponse `json:"types"`
}

func toHeatmapResponse(hm domain.Heatmap) map[int]map[int]heatmapCellResponse {
	out := make(map[int]map[int]heatmapCellResponse, len(hm))
	for hour, days := range hm {
		row := make(map[int]heatmapCellResponse, len(days))
		for day, c := range days {
			row[day] = heatmapCellResponse{
				EngagementCount: c.EngagementCount,
				Intensity:       c.Intensity,
				Types: typesResponse{
					Views:    c.Types.Views,
					Likes:    c.Types.Likes,
					Comments: c.Types.Comments,
					Shares:   c.Types.Shares,
				},
			}
		}
		out[hour] = row
	}
	return out
}

type contentPerformanceResponse struct {
	PostID           int64    `json:"post_id"`
	Title            string   `json:"title"`
	ContentLength    int      `json:"content_length"`
	HasMedia         bool     `json:"has_media"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	IsPromoted       bool     `json:"is_promoted"`
	AuthorCategory   string   `json:"author_category"`
	TotalEngagements int64    `json:"total_engagements"`
	Views            int64    `json:"views"`
	Likes            int64    `json:"likes"`
	Comments         int64    `json:"comments"`
	Shares           int64    `json:"shares"`
	EngagementRate   float64  `json:"engagement_rate"`
	QualityRatio     float64  `json:"quality_ratio"`
	ContentQuality   string   `json:"content_quality"`
}

type engagementSummaryResponse struct {
	AuthorID        int64   `json:"author_id"`
	AuthorName      string  `json:"author_name"`
	AuthorCategory  string  `json:"author_category"`
	PostCategory    string  `json:"post_category"`
	TotalViews      int64   `json:"total_views"`
	TotalLikes      int64   `json:"total_likes"`
	TotalComments   int64   `json:"total_comments"`
	TotalShares     int64   `json:"total_shares"`
	EngagementScore float64 `json:"engagement_score"`
	EngagementRate  float64 `json:"engagement_rate"`
}

// trendPointResponse is flat, the way dashboard charts consume it.
type trendPointResponse struct {
	EngagementDate   time.Time `json:"engagement_date"`
	Views            int64     `json:"views"`
	Likes            int64     `json:"likes"`
	Comments         int64     `json:"comments"`
	Shares           int64     `json:"shares"`
	TotalEngagements int64     `json:"total_engagements"`
}

func toTrendPointResponse(p domain.TrendPoint) trendPointResponse {
	return trendPointResponse{
		EngagementDate:   p.EngagementDate,
		Views:            p.Engagements.Views,
		Likes:            p.Engagements.Likes,
		Comments:         p.Engagements.Comments,
		Shares:           p.Engagements.Shares,
		TotalEngagements: p.TotalEngagements,
	}
}

// authorCategoryTrendResponse always carries author_name and category,
// even when the author has no category.
type authorCategoryTrendResponse struct {
	EngagementDate   time.Time `json:"engagement_date"`
	AuthorName       string    `json:"author_name"`
	Category         string    `json:"category"`
	Views            int64     `json:"views"`
	Likes            int64     `json:"likes"`
	Comments         int64     `json:"comments"`
	Shares           int64     `json:"shares"`
	TotalEngagements int64     `json:"total_engagements"`
}

func toAuthorCategoryTrendResponse(p domain.AuthorCategoryTrendPoint) authorCategoryTrendResponse {
	return authorCategoryTrendResponse{
		EngagementDate:   p.EngagementDate,
		AuthorName:       p.AuthorName,
		Category:         p.Category,
		Views:            p.Engagements.Views,
		Likes:            p.Engagements.Likes,
		Comments:         p.Engagements.Comments,
		Shares:           p.Engagements.Shares,
		TotalEngagements: p.TotalEngagements,
	}
}

type opportunityAreaResponse struct {
	AnalysisType       string   `json:"analysis_type"`
	EntityID           *int64   `json:"entity_id"`
	EntityName         string   `json:"entity_name"`
	Category           string   `json:"category"`
	PostCategory       *string  `json:"post_category"`
	PostCount          int64    `json:"post_count"`
	TotalEngagements   int64    `json:"total_engagements"`
	EngagementPerPost  float64  `json:"engagement_per_post"`
	EngagementsPerUser *float64 `json:"engagements_per_user"`
	OpportunityScore   float64  `json:"opportunity_score"`
}

type scatterPointResponse struct {
	EntityType         string  `json:"entity_type"`
	EntityID           string  `json:"entity_id"`
	EntityName         string  `json:"entity_name"`
	PostCount          int64   `json:"post_count"`
	EngagementsPerPost float64 `json:"engagements_per_post"`
}

type authorResponse struct {
	AuthorID int64  `json:"author_id"`
	Name     string `json:"name"`
}

type postResponse struct {
	PostID int64  `json:"post_id"`
	Title  string `json:"title"`
}

// mapSlice converts every element with fn and never returns nil, so empty
// results encode as [] rather than null.
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
