// Package query builds SQL statements from projection maps: logical field
// names on the Go side resolve to aliased column references on the SQL side,
// so repositories never concatenate raw column strings.
package query

import "strings"

// ProjectionMap resolves logical field names to qualified column references
// for one table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  map[string]string
	ordered []string
}

// NewProjectionMap creates a ProjectionMap for schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps a database column to a logical field name. Call order defines
// the SELECT column order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.fields[field] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// From returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) From() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a logical field name to its qualified column. Unmapped
// names pass through unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Columns returns the projected columns as a comma-separated SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
