package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField names one ORDER BY column by its logical field name.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields parses a comma-separated sort expression. A leading "-"
// marks a field descending, e.g. "priority,-createdAt".
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field := SortField{Field: part}
		if rest, ok := strings.CutPrefix(part, "-"); ok {
			field = SortField{Field: rest, Descending: true}
		}
		fields = append(fields, field)
	}

	return fields
}

type predicate struct {
	clause string
	args   []any
}

// Builder accumulates WHERE predicates and sort order against a projection,
// then renders SELECT, COUNT, or paginated statements with sequential
// parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	predicates  []predicate
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the projection with optional default sort.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// OrderByFields overrides the default sort order.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals adds an equality predicate. Nil values are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where(b.projection.Column(field)+" = $?", value)
}

// WhereContains adds a case-insensitive substring predicate. Nil or empty
// values are skipped.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.where(b.projection.Column(field)+" ILIKE $?", "%"+*value+"%")
}

// WhereIn adds an IN predicate. Empty slices are skipped.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	marks := strings.TrimSuffix(strings.Repeat("$?, ", len(values)), ", ")
	return b.where(b.projection.Column(field)+" IN ("+marks+")", values...)
}

// WhereNullable adds an equality predicate, or IS NULL when value is nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNil(value) {
		return b.where(col + " IS NULL")
	}
	return b.where(col+" = $?", value)
}

// WhereSearch adds one OR group of ILIKE predicates across the given fields.
// Nil or empty search terms are skipped.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = b.projection.Column(field) + " ILIKE $?"
		args[i] = "%" + *search + "%"
	}

	return b.where("("+strings.Join(clauses, " OR ")+")", args...)
}

// Build renders a SELECT with the accumulated predicates and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.renderWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.From(), where, b.renderOrderBy(),
	), args
}

// BuildCount renders a COUNT(*) with the accumulated predicates.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.renderWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage renders a SELECT with ordering, LIMIT, and OFFSET for the given
// one-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.renderWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(), b.projection.From(), where, b.renderOrderBy(),
		pageSize, (page-1)*pageSize,
	), args
}

// BuildSingle renders a single-record SELECT keyed on one field.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(idField),
	), []any{id}
}

// BuildSingleOrNull renders a LIMIT 1 SELECT with the accumulated predicates.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args := b.renderWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(), b.projection.From(), where,
	), args
}

func (b *Builder) where(clause string, args ...any) *Builder {
	b.predicates = append(b.predicates, predicate{clause: clause, args: args})
	return b
}

// renderWhere joins predicates with AND and replaces each $? marker with the
// next sequential parameter number.
func (b *Builder) renderWhere() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	var args []any
	clauses := make([]string, 0, len(b.predicates))

	n := 1
	for _, p := range b.predicates {
		clause := p.clause
		for _, arg := range p.args {
			clause = strings.Replace(clause, "$?", fmt.Sprintf("$%d", n), 1)
			args = append(args, arg)
			n++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) renderOrderBy() string {
	fields := b.sort
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

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
