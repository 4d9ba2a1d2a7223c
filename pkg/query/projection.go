package query

import "strings"

// ProjectionMap maps view field names to qualified table columns.
// Column order follows the order of Project calls so scanners can rely on it.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	views   map[string]string
}

// NewProjectionMap creates a projection for schema.table aliased as alias.
// An empty schema leaves the table unqualified.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		views:  make(map[string]string),
	}
}

// Project registers column under viewName.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.views[viewName] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the FROM clause target including the alias.
func (p *ProjectionMap) Table() string {
	name := p.table
	if p.schema != "" {
		name = p.schema + "." + p.table
	}
	return name + " " + p.alias
}

// Column resolves a view name to its qualified column.
// Unknown names are returned unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.views[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the comma separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns a copy of the qualified columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.columns))
	copy(list, p.columns)
	return list
}
