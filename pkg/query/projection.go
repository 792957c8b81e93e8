// Package query builds parameterized SELECT statements over a projected table.
package query

import (
	"fmt"
	"strings"
)

// Projection maps the field names a domain type exposes to qualified
// columns of a single aliased table. Column order is scan order.
type Projection struct {
	table   string
	alias   string
	fields  map[string]string
	columns []string
}

// NewProjection creates a Projection over table, referenced by alias.
func NewProjection(table, alias string) *Projection {
	return &Projection{
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project appends column to the select list under the given field name.
func (p *Projection) Project(column, field string) *Projection {
	qualified := p.alias + "." + column
	p.fields[field] = qualified
	p.columns = append(p.columns, qualified)
	return p
}

// From returns the table reference with its alias.
func (p *Projection) From() string {
	return fmt.Sprintf("%s %s", p.table, p.alias)
}

// Column returns the qualified column for field. Unknown fields panic: field
// names are compile-time constants of the calling package, never user input.
func (p *Projection) Column(field string) string {
	col, ok := p.fields[field]
	if !ok {
		panic(fmt.Sprintf("query: field %q is not projected from %s", field, p.table))
	}
	return col
}

// Columns returns the select list.
func (p *Projection) Columns() string {
	return strings.Join(p.columns, ", ")
}
