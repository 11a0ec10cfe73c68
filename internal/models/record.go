package models

// Record is one table row keyed by column name. Rows travel through the API
// untyped because the hosted schema is owned elsewhere.
type Record map[string]interface{}

// String returns the column value when it is a non-empty string.
func (r Record) String(column string) (string, bool) {
	value, ok := r[column].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Filter is an equality condition on a single column.
type Filter struct {
	Column string
	Value  interface{}
}

// Eq builds an equality filter.
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts a selection by one column.
type Order struct {
	Column string
	Desc   bool
}

// SelectQuery narrows a table read. Empty Columns selects every column and a
// zero Limit returns all matching rows.
type SelectQuery struct {
	Columns []string
	Filters []Filter
	Order   *Order
	Limit   int
}
