// Package records bulk-loads rows into the records schema.
package records

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/insight-backend/internal/adapter/postgres"
)

const schema = "records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type db interface {
	postgres.Querier
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Column is one attribute of a records table.
type Column struct {
	Name string `db:"attname"`
	OID  uint32 `db:"atttypid"`
}

// Repo writes seed data. Table names are quoted as identifiers; callers are
// expected to have validated them already.
type Repo struct {
	db db
}

// New creates a new records repository.
func New(db db) *Repo {
	return &Repo{db: db}
}

// Columns returns the live columns of records.<table> in attribute order.
func (r *Repo) Columns(ctx context.Context, table string) ([]Column, error) {
	query, args, err := psql.
		Select("attname", "atttypid").
		From("pg_attribute").
		Where(sq.Expr("attrelid = ?::regclass", schema+"."+table)).
		Where("attnum > 0").
		Where("NOT attisdropped").
		OrderBy("attnum").
		ToSql()
	if err != nil {
		return nil, err
	}

	var cols []Column
	if err := pgxscan.Select(ctx, r.db, &cols, query, args...); err != nil {
		return nil, postgres.MapError(err, "table", table)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s has no columns", table)
	}
	return cols, nil
}

// HasRows reports whether records.<table> contains at least one row.
func (r *Repo) HasRows(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM "+pgx.Identifier{schema, table}.Sanitize()+")").Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "table", table)
	}
	return exists, nil
}

// CopyRows streams rows into records.<table> with the COPY protocol.
func (r *Repo) CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{schema, table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, postgres.MapError(err, "table", table)
	}
	return n, nil
}

// SyncSequence moves the serial sequence behind column past the largest
// loaded value. Columns without a sequence are left alone.
func (r *Repo) SyncSequence(ctx context.Context, table, column string) error {
	var seq *string
	if err := r.db.QueryRow(ctx, "SELECT pg_get_serial_sequence($1, $2)",
		schema+"."+table, column).Scan(&seq); err != nil {
		return postgres.MapError(err, "sequence", table+"."+column)
	}
	if seq == nil {
		return nil
	}

	_, err := r.db.Exec(ctx,
		"SELECT setval($1::regclass, GREATEST((SELECT MAX("+pgx.Identifier{column}.Sanitize()+") FROM "+
			pgx.Identifier{schema, table}.Sanitize()+"), 1))", *seq)
	if err != nil {
		return postgres.MapError(err, "sequence", *seq)
	}
	return nil
}
