package domain

import "time"

// Engagement types recorded in records.engagements.type.
const (
	EngagementView    = "view"
	EngagementLike    = "like"
	EngagementComment = "comment"
	EngagementShare   = "share"
)

// DashboardSummary is the headline block of the dashboard.
type DashboardSummary struct {
	TotalPosts          int64   `db:"total_posts"`
	TotalAuthors        int64   `db:"total_authors"`
	TotalEngagements    int64   `db:"total_engagements"`
	TotalViews          int64   `db:"total_views"`
	TotalLikes          int64   `db:"total_likes"`
	TotalComments       int64   `db:"total_comments"`
	TotalShares         int64   `db:"total_shares"`
	AvgEngagementRate   float64 `db:"avg_engagement_rate"`
	TopPerformingAuthor string  `db:"top_performing_author"`
	BestTimeToPost      string  `db:"best_time_to_post"`
	TopCategory         string  `db:"top_category"`
}

// AdvancedInsight is a computed observation with a canned recommendation.
type AdvancedInsight struct {
	InsightType    string  `db:"insight_type"`
	Title          string  `db:"title"`
	Description    string  `db:"description"`
	Metric         float64 `db:"metric_value"`
	Trend          string  `db:"trend"`
	Impact         string  `db:"impact"`
	Recommendation string  `db:"-"`
}

// EngagementBreakdown counts engagements per type.
type EngagementBreakdown struct {
	Views    int64
	Likes    int64
	Comments int64
	Shares   int64
}

// HeatmapCell is one (hour, weekday) bucket.
type HeatmapCell struct {
	EngagementCount int64
	Intensity       float64
	Types           EngagementBreakdown
}

// Heatmap maps hour of day (0-23) to weekday (0 = Sunday) to a cell.
// Buckets without engagements are absent.
type Heatmap map[int]map[int]HeatmapCell

// ContentPerformance describes how one post performed.
type ContentPerformance struct {
	PostID           int64    `db:"post_id"`
	Title            string   `db:"title"`
	ContentLength    int      `db:"content_length"`
	HasMedia         bool     `db:"has_media"`
	Category         string   `db:"category"`
	Tags             []string `db:"tags"`
	IsPromoted       bool     `db:"is_promoted"`
	AuthorCategory   string   `db:"author_category"`
	TotalEngagements int64    `db:"total_engagements"`
	Views            int64    `db:"views"`
	Likes            int64    `db:"likes"`
	Comments         int64    `db:"comments"`
	Shares           int64    `db:"shares"`
	EngagementRate   float64  `db:"engagement_rate"`
	QualityRatio     float64  `db:"quality_ratio"`
	ContentQuality   string   `db:"content_quality"`
}

// EngagementSummary aggregates engagements for one author and post category.
type EngagementSummary struct {
	AuthorID        int64   `db:"author_id"`
	AuthorName      string  `db:"author_name"`
	AuthorCategory  string  `db:"author_category"`
	PostCategory    string  `db:"post_category"`
	TotalViews      int64   `db:"total_views"`
	TotalLikes      int64   `db:"total_likes"`
	TotalComments   int64   `db:"total_comments"`
	TotalShares     int64   `db:"total_shares"`
	EngagementScore float64 `db:"engagement_score"`
	EngagementRate  float64 `db:"engagement_rate"`
}

// TrendPoint is one day of a trend series. TotalEngagements is the row
// count reported by the query, not a sum of the breakdown.
type TrendPoint struct {
	EngagementDate   time.Time
	Engagements      EngagementBreakdown
	TotalEngagements int64
}

// AuthorCategoryTrendPoint is one day of engagements for one author.
type AuthorCategoryTrendPoint struct {
	EngagementDate   time.Time
	AuthorName       string
	Category         string
	Engagements      EngagementBreakdown
	TotalEngagements int64
}

// OpportunityArea is a pairing with many posts but weak engagement.
type OpportunityArea struct {
	AnalysisType       string   `db:"analysis_type"`
	EntityID           *int64   `db:"entity_id"`
	EntityName         string   `db:"entity_name"`
	Category           string   `db:"category"`
	PostCategory       *string  `db:"post_category"`
	PostCount          int64    `db:"post_count"`
	TotalEngagements   int64    `db:"total_engagements"`
	EngagementPerPost  float64  `db:"engagement_per_post"`
	EngagementsPerUser *float64 `db:"engagements_per_user"`
	OpportunityScore   float64  `db:"opportunity_score"`
}

// ScatterPoint plots output volume against engagement per post.
type ScatterPoint struct {
	EntityType         string
	EntityID           string
	EntityName         string
	PostCount          int64
	EngagementsPerPost float64
}

// AuthorRef is an author id/name pair for filter dropdowns.
type AuthorRef struct {
	AuthorID int64  `db:"author_id"`
	Name     string `db:"name"`
}

// PostRef is a post id/title pair for filter dropdowns.
type PostRef struct {
	PostID int64  `db:"post_id"`
	Title  string `db:"title"`
}

// Patterns maps an insight type to its decoded JSON payload.
type Patterns map[string]any

// Table is a full dump of one table.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}
