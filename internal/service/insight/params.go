package insight

import (
	"context"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/insight-backend/internal/domain"
	"github.com/heartmarshall/insight-backend/internal/sqltemplate"
)

// Period keywords accepted by window-based endpoints.
const (
	PeriodLast7Days   = "last_7_days"
	PeriodLast30Days  = "last_30_days"
	PeriodLast3Months = "last_3_months"
	PeriodLastYear    = "last_year"
)

// Entity types accepted by the trend and scatter endpoints.
const (
	EntityAuthor   = "author"
	EntityPost     = "post"
	EntityCategory = "category"
)

const (
	DefaultPeriod      = PeriodLastYear
	DefaultScatterType = EntityAuthor
	DefaultMinPosts    = 2
	DefaultMinLength   = 500
	DefaultTrendDays   = 365
)

var periodDays = map[string]int{
	PeriodLast7Days:   7,
	PeriodLast30Days:  30,
	PeriodLast3Months: 90,
	PeriodLastYear:    365,
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the window covering the days before now.
func LastDays(now time.Time, days int) Window {
	now = now.UTC()
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

func (w Window) params() sqltemplate.Params {
	return sqltemplate.Params{"start_date": w.Start, "end_date": w.End}
}

// ParsePeriod converts a period keyword into a window ending at now. An
// empty keyword means the last year; unknown keywords are rejected.
func ParsePeriod(raw string, now time.Time) (Window, error) {
	if raw == "" {
		raw = DefaultPeriod
	}
	days, ok := periodDays[raw]
	if !ok {
		return Window{}, domain.NewValidationError("period", "unknown period "+strconv.Quote(raw))
	}
	return LastDays(now, days), nil
}

// TrendSelector names the entity an engagement trend is computed for.
type TrendSelector struct {
	EntityType   string
	AuthorName   string
	PostTitle    string
	CategoryName string
}

type idResolver interface {
	AuthorIDByName(ctx context.Context, name string) (int64, error)
	PostIDByTitle(ctx context.Context, title string) (int64, error)
}

// Resolve turns the selector into a predicate over posts aliased as p.
// Names are looked up by id; the category name is bound, never quoted
// into the SQL text.
func (s TrendSelector) Resolve(ctx context.Context, ids idResolver) (sq.Sqlizer, error) {
	switch {
	case s.EntityType == EntityAuthor && s.AuthorName != "":
		id, err := ids.AuthorIDByName(ctx, s.AuthorName)
		if err != nil {
			return nil, err
		}
		return sq.Eq{"p.author_id": id}, nil

	case s.EntityType == EntityPost && s.PostTitle != "":
		id, err := ids.PostIDByTitle(ctx, s.PostTitle)
		if err != nil {
			return nil, err
		}
		return sq.Eq{"p.post_id": id}, nil

	case s.EntityType == EntityCategory && s.CategoryName != "":
		return sq.Eq{"p.category": s.CategoryName}, nil
	}
	return nil, domain.ErrInvalidSelector
}

// scatterGrouping returns the entity id, name and GROUP BY fragments for a
// scatter entity type.
func scatterGrouping(entityType string) (id, name, groupBy sq.Sqlizer, err error) {
	switch entityType {
	case EntityAuthor:
		return sq.Expr("a.author_id"), sq.Expr("a.name"), sq.Expr("a.author_id, a.name"), nil
	case EntityCategory:
		return sq.Expr("a.author_category"), sq.Expr("a.author_category"), sq.Expr("a.author_category"), nil
	}
	return nil, nil, nil, domain.ErrInvalidSelector
}

// Limits bounds numeric query parameters.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
	MaxTrendDays int
}

func (l Limits) limit(v *int) (int, error) {
	if v == nil {
		return l.DefaultLimit, nil
	}
	if *v < 1 || *v > l.MaxLimit {
		return 0, domain.NewValidationError("limit", "must be between 1 and "+strconv.Itoa(l.MaxLimit))
	}
	return *v, nil
}

func (l Limits) days(v *int) (int, error) {
	if v == nil {
		return DefaultTrendDays, nil
	}
	if *v < 1 || *v > l.MaxTrendDays {
		return 0, domain.NewValidationError("days", "must be between 1 and "+strconv.Itoa(l.MaxTrendDays))
	}
	return *v, nil
}

func minPosts(v *int) (int, error) {
	if v == nil {
		return DefaultMinPosts, nil
	}
	if *v < 1 {
		return 0, domain.NewValidationError("min_posts", "must be at least 1")
	}
	return *v, nil
}

func minContentLength(v *int) (int, error) {
	if v == nil {
		return DefaultMinLength, nil
	}
	if *v < 0 {
		return 0, domain.NewValidationError("min_content_length", "must not be negative")
	}
	return *v, nil
}
