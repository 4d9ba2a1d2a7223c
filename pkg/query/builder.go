// Package query provides a small SQL builder over projection maps.
// Builders render positional parameters for the configured Dialect.
package query

import (
	"fmt"
	"strings"
)

const marker = "$%d"

type condition struct {
	clause string
	args   []any
}

// Builder constructs SQL queries using a fluent API with automatic parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	dialect     Dialect
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder creates a Postgres Builder for the given projection.
// defaultSort is applied when no explicit ordering is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		dialect:     Postgres,
		conditions:  make([]condition, 0),
		defaultSort: defaultSort,
	}
}

// WithDialect sets the dialect used to render placeholders and pattern operators.
func (b *Builder) WithDialect(d Dialect) *Builder {
	if d != "" {
		b.dialect = d
	}
	return b
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere(b.conditions)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where)
	return sql, args
}

// BuildPage returns a paginated SELECT query with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	return b.BuildSlice(pageSize, (page-1)*pageSize)
}

// BuildSlice returns an ordered SELECT query for limit rows starting at offset.
func (b *Builder) BuildSlice(limit, offset int) (string, []any) {
	where, args := b.buildWhere(b.conditions)

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.buildOrderBy(),
		limit,
		offset,
	)

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by ID.
// Existing conditions are kept so lookups can be scoped.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	conds := append(b.conditions[:len(b.conditions):len(b.conditions)], condition{
		clause: fmt.Sprintf("%s = %s", b.projection.Column(idField), marker),
		args:   []any{id},
	})

	where, args := b.buildWhere(conds)
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s",
		b.projection.Columns(),
		b.projection.Table(),
		where,
	)
	return sql, args
}

// OrderBy sets a single sort field and direction. Empty field uses the default sort.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field == "" {
		b.orderBy = nil
		return b
	}
	b.orderBy = []SortField{{Field: field, Descending: descending}}
	return b
}

// OrderByFields replaces the ordering with fields. An empty slice restores the default sort.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.orderBy = fields
	return b
}

// WhereContains adds a case-insensitive substring condition. Nil or empty values are ignored.
// Wildcards in value are matched literally.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: b.likeClause(b.projection.Column(field)),
		args:   []any{"%" + EscapeLike(*value) + "%"},
	})
	return b
}

// WhereEquals adds an equality condition. Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s = %s", b.projection.Column(field), marker),
		args:   []any{value},
	})
	return b
}

// WhereIn adds an IN condition for multiple values. Empty slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = marker
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(placeholders, ", ")),
		args:   values,
	})
	return b
}

// WhereSearch adds an OR of substring conditions across fields. Nil or empty search is ignored.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := "%" + EscapeLike(*search) + "%"

	for i, field := range fields {
		clauses[i] = b.likeClause(b.projection.Column(field))
		args[i] = pattern
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

func (b *Builder) likeClause(col string) string {
	return b.dialect.Contains(col, marker)
}

func (b *Builder) buildOrderBy() string {
	fields := b.orderBy
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere(conds []condition) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(conds))
	args := make([]any, 0)
	idx := 1

	for _, cond := range conds {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, marker, b.dialect.Placeholder(idx), 1)
			args = append(args, arg)
			idx++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
