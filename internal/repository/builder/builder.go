package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct parameterized PostgreSQL statements.
// Conditions are written with "?" markers which Build rewrites to $1, $2, ...
// in argument order. Caller values always travel as arguments.
type SQLBuilder struct {
	table     string
	columns   []string
	values    []interface{}
	where     []condition
	joins     []string
	orderBy   []string
	limit     int
	offset    int
	sets      []setClause
	returning []string
	isInsert  bool
	isUpdate  bool
	isDelete  bool
	isSelect  bool
}

type condition struct {
	sql  string
	args []interface{}
}

// setClause is either a bound value or a raw SQL expression such as NOW().
type setClause struct {
	col  string
	val  interface{}
	expr string
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set binds a value to a column for update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.sets = append(b.sets, setClause{col: col, val: val})
	return b
}

// SetExpr assigns a trusted SQL expression (e.g. NOW()) to a column for update.
func (b *SQLBuilder) SetExpr(col, expr string) *SQLBuilder {
	b.sets = append(b.sets, setClause{col: col, expr: expr})
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// Returning appends a RETURNING clause so generated columns come back in the
// same round trip as the write.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = cols
	return b
}

// Where adds a condition; multiple conditions are combined with AND.
func (b *SQLBuilder) Where(cond string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition{sql: cond, args: args})
	return b
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a bound LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds a bound OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// BuildSafe constructs the final SQL string and arguments with safety validation.
// Returns an error if a condition's "?" markers don't match its arguments.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	for _, c := range b.where {
		if n := strings.Count(c.sql, "?"); n != len(c.args) {
			return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d) in %q", n, len(c.args), c.sql)
		}
	}
	if b.isInsert && len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert into %s has %d columns but %d values", b.table, len(b.columns), len(b.values))
	}

	sql, args := b.Build()
	return sql, args, nil
}

// Build constructs the final SQL string and arguments. It can be called more
// than once with the same result.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(join)
		}
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i, v := range b.values {
			placeholders[i] = bind(v)
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		b.writeReturning(&sb)
		return sb.String(), args
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.sets))
		for i, s := range b.sets {
			if s.expr != "" {
				setClauses[i] = fmt.Sprintf("%s = %s", s.col, s.expr)
				continue
			}
			setClauses[i] = fmt.Sprintf("%s = %s", s.col, bind(s.val))
		}
		sb.WriteString(strings.Join(setClauses, ", "))
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		conditions := make([]string, len(b.where))
		for i, c := range b.where {
			var cb strings.Builder
			parts := strings.Split(c.sql, "?")
			for j, part := range parts {
				cb.WriteString(part)
				if j < len(parts)-1 {
					var arg interface{}
					if j < len(c.args) {
						arg = c.args[j]
					}
					cb.WriteString(bind(arg))
				}
			}
			conditions[i] = cb.String()
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(bind(b.limit))
	}

	if b.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(bind(b.offset))
	}

	if b.isUpdate || b.isDelete {
		b.writeReturning(&sb)
	}

	return sb.String(), args
}

func (b *SQLBuilder) writeReturning(sb *strings.Builder) {
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}
}
