package cassandra

import (
	"fmt"

	"github.com/robotcql/robotcql/internal/errs"
)

// Row is a single result row: column name to Go-native value, as decoded
// by the driver.
type Row map[string]any

// Column returns the string representation of the named column's value.
// Returns ErrKindColumnNotFound when the row has no such column — the
// lookup is keyed, never a fallback to a zero value.
func (r Row) Column(name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", errs.New(errs.ErrKindColumnNotFound,
			fmt.Sprintf("column %q not present in row", name))
	}
	return stringify(v), nil
}

// Rows is an ordered, fully materialized result set.
type Rows []Row

// ProjectColumn extracts the named column from every row, in input order,
// as stringified values. The output always has the same length as rows;
// the first row missing the column aborts the projection.
func ProjectColumn(column string, rows Rows) ([]string, error) {
	values := make([]string, 0, len(rows))
	for i, row := range rows {
		v, err := row.Column(column)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindColumnNotFound,
				fmt.Sprintf("row %d", i), err)
		}
		values = append(values, v)
	}
	return values, nil
}

// stringify renders a driver value the way a test log would show it.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
