package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField is one ORDER BY term, addressed by projected field name.
type SortField struct {
	Field      string
	Descending bool
}

// Builder accumulates AND-ed conditions over a Projection and renders
// SELECT statements with sequentially numbered placeholders.
type Builder struct {
	projection  *Projection
	clauses     []string
	args        []any
	order       []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder. defaultSort applies when OrderBy is never called.
func NewBuilder(projection *Projection, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// WhereEquals adds field = value. Nil values, including typed nil pointers, are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", b.projection.Column(field), len(b.args)))
	return b
}

// WhereIn adds field IN (...). An empty value list is ignored.
func (b *Builder) WhereIn(field string, values ...any) *Builder {
	if len(values) == 0 {
		return b
	}
	marks := make([]string, len(values))
	for i, v := range values {
		b.args = append(b.args, v)
		marks[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(marks, ", ")))
	return b
}

// OrderBy replaces the default sort.
func (b *Builder) OrderBy(fields ...SortField) *Builder {
	b.order = fields
	return b
}

// Build renders the full ordered SELECT.
func (b *Builder) Build() (string, []any) {
	return b.selectSQL() + b.orderSQL(), b.args
}

// BuildCount renders SELECT COUNT(*) over the same conditions.
func (b *Builder) BuildCount() (string, []any) {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), b.whereSQL()), b.args
}

// BuildPage renders the ordered SELECT restricted to one page.
func (b *Builder) BuildPage(limit, offset int) (string, []any) {
	return fmt.Sprintf("%s%s LIMIT %d OFFSET %d", b.selectSQL(), b.orderSQL(), limit, offset), b.args
}

// BuildSingle renders a SELECT of the row whose field equals id, combined
// with any conditions already added.
func (b *Builder) BuildSingle(field string, id any) (string, []any) {
	b.WhereEquals(field, id)
	return b.selectSQL() + " LIMIT 1", b.args
}

func (b *Builder) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s%s", b.projection.Columns(), b.projection.From(), b.whereSQL())
}

func (b *Builder) whereSQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func (b *Builder) orderSQL() string {
	fields := b.order
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		terms[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
