// Package seeder bootstraps the records schema from CSV exports.
package seeder

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/records"
)

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type tableLoader interface {
	Columns(ctx context.Context, table string) ([]records.Column, error)
	HasRows(ctx context.Context, table string) (bool, error)
	CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	SyncSequence(ctx context.Context, table, column string) error
}

// TableResult holds the outcome of seeding one table.
type TableResult struct {
	Parsed   int
	Inserted int64
	Skipped  string // reason, empty when the table was loaded
	Duration time.Duration
	Err      error
}

// Pipeline loads tables in configuration order, so parents precede the
// tables that reference them.
type Pipeline struct {
	log     *slog.Logger
	loader  tableLoader
	cfg     Config
	results map[string]TableResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, loader tableLoader, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		loader:  loader,
		cfg:     cfg,
		results: make(map[string]TableResult),
	}
}

// Results returns per-table results after Run completes.
func (p *Pipeline) Results() map[string]TableResult {
	return p.results
}

// HasErrors returns true if any table failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run seeds every configured table. A failing table is recorded and the
// remaining tables are still attempted; only an invalid table name or a
// cancelled context stops the run.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, table := range p.cfg.Tables {
		if !tableNameRe.MatchString(table) {
			return fmt.Errorf("seeder: invalid table name %q", table)
		}
	}

	for _, table := range p.cfg.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		result := p.seedTable(ctx, table)
		result.Duration = time.Since(start)
		p.results[table] = result

		switch {
		case result.Err != nil:
			p.log.Warn("table failed",
				slog.String("table", table),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration))
		case result.Skipped != "":
			p.log.Info("table skipped",
				slog.String("table", table),
				slog.String("reason", result.Skipped))
		default:
			p.log.Info("table seeded",
				slog.String("table", table),
				slog.Int("parsed", result.Parsed),
				slog.Int64("inserted", result.Inserted),
				slog.Duration("duration", result.Duration))
		}
	}
	return nil
}

func (p *Pipeline) seedTable(ctx context.Context, table string) TableResult {
	f, err := os.Open(filepath.Join(p.cfg.Dir, table+".csv"))
	if errors.Is(err, fs.ErrNotExist) {
		return TableResult{Skipped: "no csv file"}
	}
	if err != nil {
		return TableResult{Err: err}
	}
	defer f.Close()

	nonEmpty, err := p.loader.HasRows(ctx, table)
	if err != nil {
		return TableResult{Err: err}
	}
	if nonEmpty {
		return TableResult{Skipped: "table already has rows"}
	}

	cols, err := p.loader.Columns(ctx, table)
	if err != nil {
		return TableResult{Err: err}
	}

	header, rows, err := readCSV(f, cols)
	if err != nil {
		return TableResult{Err: fmt.Errorf("%s.csv: %w", table, err)}
	}
	result := TableResult{Parsed: len(rows)}
	if p.cfg.DryRun || len(rows) == 0 {
		return result
	}

	result.Inserted, result.Err = p.loader.CopyRows(ctx, table, header, rows)
	if result.Err != nil {
		return result
	}

	// The leading column is the key; only serial keys have a sequence to move.
	if header[0] == cols[0].Name {
		result.Err = p.loader.SyncSequence(ctx, table, header[0])
	}
	return result
}

// readCSV decodes a header row naming table columns followed by data rows.
func readCSV(r io.Reader, cols []records.Column) ([]string, [][]any, error) {
	types := make(map[string]uint32, len(cols))
	for _, c := range cols {
		types[c.Name] = c.OID
	}

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("missing header row")
		}
		return nil, nil, err
	}
	header = append([]string(nil), header...)

	oids := make([]uint32, len(header))
	for i, name := range header {
		oid, ok := types[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown column %q", name)
		}
		oids[i] = oid
	}
	conv := newConverter(oids)

	var rows [][]any
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row, err := conv.row(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
