// Package sqltemplate loads SQL text addressed by logical name and binds it
// to parameters.
//
// Templates support two placeholder kinds:
//
//	@name       bound parameter, carried as a query argument
//	{{name}}    fragment slot, filled from a squirrel.Sqlizer built in code
//
// Values are never spliced into the SQL text. Fragment arguments are bound
// the same way as template parameters.
package sqltemplate

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

const ext = ".sql"

//go:embed templates
var embedded embed.FS

var (
	slotRe  = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	paramRe = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)
)

// Params holds render inputs keyed by placeholder name.
type Params map[string]any

// Query is a rendered template ready for execution with positional arguments.
type Query struct {
	Name string
	SQL  string
	Args []any
}

// Store resolves templates from a file system.
type Store struct {
	fsys fs.FS
}

// New creates a Store over fsys.
func New(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Embedded returns a Store over the templates compiled into the binary.
func Embedded() *Store {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("sqltemplate: embedded templates: %v", err))
	}
	return New(sub)
}

// Dir returns a Store reading templates from dir on every call, so edits
// are picked up without a restart.
func Dir(dir string) *Store {
	return New(os.DirFS(dir))
}

// Load returns the raw text of the named template.
func (s *Store) Load(name string) (string, error) {
	path := name + ext
	if !fs.ValidPath(path) {
		return "", &domain.TemplateError{Template: name, Err: domain.ErrTemplateNotFound}
	}

	b, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &domain.TemplateError{Template: name, Err: domain.ErrTemplateNotFound}
		}
		return "", fmt.Errorf("sqltemplate.Load %s: %w", name, err)
	}
	return string(b), nil
}

// List returns the logical names of all templates, sorted.
func (s *Store) List() ([]string, error) {
	var names []string
	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ext) {
			return nil
		}
		names = append(names, strings.TrimSuffix(path, ext))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqltemplate.List: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Render loads the named template and binds params to it.
//
// Every {{slot}} must map to a squirrel.Sqlizer and every @param must be
// present in params. Keys the template does not reference are ignored.
func (s *Store) Render(name string, params Params) (Query, error) {
	text, err := s.Load(name)
	if err != nil {
		return Query{}, err
	}

	args := pgx.StrictNamedArgs{}

	var slotErr error
	text = slotRe.ReplaceAllStringFunc(text, func(m string) string {
		if slotErr != nil {
			return m
		}
		slot := slotRe.FindStringSubmatch(m)[1]
		sql, err := bindFragment(name, slot, params, args)
		if err != nil {
			slotErr = err
			return m
		}
		return sql
	})
	if slotErr != nil {
		return Query{}, slotErr
	}

	for _, m := range paramRe.FindAllStringSubmatch(text, -1) {
		key := m[1]
		if _, bound := args[key]; bound {
			continue
		}
		v, ok := params[key]
		if !ok {
			return Query{}, &domain.TemplateError{Template: name, Param: key, Err: domain.ErrMissingParameter}
		}
		if _, isFragment := v.(squirrel.Sqlizer); isFragment {
			return Query{}, &domain.TemplateError{Template: name, Param: key, Err: domain.ErrInvalidParameter}
		}
		args[key] = v
	}

	sql, positional, err := args.RewriteQuery(context.Background(), nil, text, nil)
	if err != nil {
		return Query{}, fmt.Errorf("sqltemplate.Render %s: %w", name, err)
	}

	return Query{Name: name, SQL: sql, Args: positional}, nil
}

// bindFragment renders the Sqlizer for slot and renames its ? placeholders
// to named arguments registered in args.
func bindFragment(name, slot string, params Params, args pgx.StrictNamedArgs) (string, error) {
	v, ok := params[slot]
	if !ok {
		return "", &domain.TemplateError{Template: name, Param: slot, Err: domain.ErrMissingParameter}
	}
	frag, ok := v.(squirrel.Sqlizer)
	if !ok {
		return "", &domain.TemplateError{Template: name, Param: slot, Err: domain.ErrInvalidParameter}
	}

	sql, fragArgs, err := frag.ToSql()
	if err != nil {
		return "", fmt.Errorf("sqltemplate.Render %s fragment %s: %w: %w", name, slot, domain.ErrInvalidParameter, err)
	}

	var b strings.Builder
	b.Grow(len(sql) + len(fragArgs)*(len(slot)+4))
	n := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' {
			b.WriteByte(sql[i])
			continue
		}
		// "??" is squirrel's escape for a literal question mark.
		if i+1 < len(sql) && sql[i+1] == '?' {
			b.WriteByte('?')
			i++
			continue
		}
		if n >= len(fragArgs) {
			return "", &domain.TemplateError{Template: name, Param: slot, Err: domain.ErrInvalidParameter}
		}
		key := slot + "__" + strconv.Itoa(n+1)
		args[key] = fragArgs[n]
		b.WriteByte('@')
		b.WriteString(key)
		n++
	}
	if n != len(fragArgs) {
		return "", &domain.TemplateError{Template: name, Param: slot, Err: domain.ErrInvalidParameter}
	}

	return b.String(), nil
}
