package seeder

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// converter turns CSV text into the Go values COPY expects for each column.
// COPY only speaks the binary format, so text has to be decoded first.
type converter struct {
	types *pgtype.Map
	oids  []uint32
}

func newConverter(oids []uint32) *converter {
	return &converter{types: pgtype.NewMap(), oids: oids}
}

// row decodes one record. Empty fields load as NULL.
func (c *converter) row(record []string) ([]any, error) {
	if len(record) != len(c.oids) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(c.oids), len(record))
	}

	out := make([]any, len(record))
	for i, field := range record {
		if field == "" {
			continue
		}
		var v any
		if err := c.types.Scan(c.oids[i], pgtype.TextFormatCode, []byte(field), &v); err != nil {
			return nil, fmt.Errorf("field %d %q: %w", i+1, field, err)
		}
		out[i] = normalize(v)
	}
	return out, nil
}

// normalize narrows decoded arrays of text to []string, which pgx encodes
// without reflection.
func normalize(v any) any {
	arr, ok := v.([]any)
	if !ok {
		return v
	}
	strs := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return v
		}
		strs[i] = s
	}
	return strs
}
