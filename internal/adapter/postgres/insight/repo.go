// Package insight executes rendered dashboard templates and the small
// lookup queries the dashboard needs against the records schema.
package insight

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/insight-backend/internal/adapter/postgres"
	"github.com/heartmarshall/insight-backend/internal/domain"
	"github.com/heartmarshall/insight-backend/internal/metrics"
	"github.com/heartmarshall/insight-backend/internal/sqltemplate"
)

const schema = "records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo runs queries on a pooled connection. Every call acquires and releases
// its own connection; there is no retry.
type Repo struct {
	db      postgres.Querier
	metrics *metrics.Metrics
}

// New creates a new insight repository.
func New(db postgres.Querier, m *metrics.Metrics) *Repo {
	return &Repo{db: db, metrics: m}
}

// Select runs q and scans every row into dst, which must be a pointer to a slice.
func (r *Repo) Select(ctx context.Context, dst any, q sqltemplate.Query) error {
	start := time.Now()
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, q.SQL, q.Args...)
	r.metrics.ObserveQuery(q.Name, start, err)
	return postgres.QueryError(q.Name, err)
}

// Get runs q and scans exactly one row into dst. A query returning no rows
// yields an error wrapping domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, dst any, q sqltemplate.Query) error {
	start := time.Now()
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, q.SQL, q.Args...)
	r.metrics.ObserveQuery(q.Name, start, err)
	if postgres.IsNoRows(err) {
		return fmt.Errorf("query %s: %w", q.Name, domain.ErrNotFound)
	}
	return postgres.QueryError(q.Name, err)
}

// AuthorIDByName resolves an author name to its id.
func (r *Repo) AuthorIDByName(ctx context.Context, name string) (int64, error) {
	query := psql.Select("author_id").
		From(schema + ".authors").
		Where(sq.Eq{"name": name}).
		OrderBy("author_id").
		Limit(1)

	var id int64
	if err := r.lookup(ctx, "author_id_by_name", query, &id); err != nil {
		if postgres.IsNoRows(err) {
			return 0, &domain.EntityNotFoundError{Entity: "author", Name: name}
		}
		return 0, postgres.QueryError("author_id_by_name", err)
	}
	return id, nil
}

// PostIDByTitle resolves a post title to its id.
func (r *Repo) PostIDByTitle(ctx context.Context, title string) (int64, error) {
	query := psql.Select("post_id").
		From(schema + ".posts").
		Where(sq.Eq{"title": title}).
		OrderBy("post_id").
		Limit(1)

	var id int64
	if err := r.lookup(ctx, "post_id_by_title", query, &id); err != nil {
		if postgres.IsNoRows(err) {
			return 0, &domain.EntityNotFoundError{Entity: "post", Name: title}
		}
		return 0, postgres.QueryError("post_id_by_title", err)
	}
	return id, nil
}

func (r *Repo) lookup(ctx context.Context, name string, b sq.SelectBuilder, dst any) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return err
	}
	start := time.Now()
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, sql, args...)
	r.metrics.ObserveQuery(name, start, err)
	return err
}

// ListAuthors returns every author ordered by name.
func (r *Repo) ListAuthors(ctx context.Context) ([]domain.AuthorRef, error) {
	var out []domain.AuthorRef
	err := r.list(ctx, "list_authors", psql.Select("author_id", "name").From(schema+".authors").OrderBy("name"), &out)
	return out, err
}

// ListPosts returns every post ordered by id.
func (r *Repo) ListPosts(ctx context.Context) ([]domain.PostRef, error) {
	var out []domain.PostRef
	err := r.list(ctx, "list_posts", psql.Select("post_id", "title").From(schema+".posts").OrderBy("post_id"), &out)
	return out, err
}

// ListCategories returns the distinct non-null post categories.
func (r *Repo) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.list(ctx, "list_categories",
		psql.Select("category").Distinct().
			From(schema+".posts").
			Where(sq.NotEq{"category": nil}).
			OrderBy("category"),
		&out)
	return out, err
}

func (r *Repo) list(ctx context.Context, name string, b sq.SelectBuilder, dst any) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return err
	}
	start := time.Now()
	err = pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, sql, args...)
	r.metrics.ObserveQuery(name, start, err)
	return postgres.QueryError(name, err)
}

// DumpTable reads every row of records.<table>. The table name is quoted as
// an identifier; callers are expected to have validated it already.
func (r *Repo) DumpTable(ctx context.Context, table string) (domain.Table, error) {
	name := "dump_" + table
	start := time.Now()

	t, err := r.dump(ctx, table)
	r.metrics.ObserveQuery(name, start, err)
	if err != nil {
		return domain.Table{}, postgres.QueryError(name, err)
	}
	return t, nil
}

func (r *Repo) dump(ctx context.Context, table string) (domain.Table, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx,
		"SELECT * FROM "+pgx.Identifier{schema, table}.Sanitize())
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	t := domain.Table{Name: table}
	for _, fd := range rows.FieldDescriptions() {
		t.Columns = append(t.Columns, fd.Name)
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return domain.Table{}, err
		}
		t.Rows = append(t.Rows, values)
	}
	return t, rows.Err()
}
