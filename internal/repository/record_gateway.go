package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
)

// ErrInvalidIdentifier is returned for table or column names that are not
// plain SQL identifiers.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrEmptyUpdate is returned when an update has no columns to set or no
// filter restricting the affected rows.
var ErrEmptyUpdate = errors.New("update requires a patch and at least one filter")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QueryObserver receives the duration of every statement.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// RecordGateway performs table-level reads and writes of untyped rows.
type RecordGateway struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewRecordGateway constructs the gateway. observer may be nil.
func NewRecordGateway(db *sqlx.DB, observer QueryObserver) *RecordGateway {
	return &RecordGateway{db: db, observer: observer}
}

// Select returns the rows of table matching q.
func (g *RecordGateway) Select(ctx context.Context, table string, q models.SelectQuery) ([]models.Record, error) {
	if err := checkIdentifiers(append([]string{table}, q.Columns...)...); err != nil {
		return nil, err
	}

	builder := strings.Builder{}
	builder.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		builder.WriteString("*")
	} else {
		builder.WriteString(strings.Join(q.Columns, ", "))
	}
	builder.WriteString(" FROM ")
	builder.WriteString(table)

	args := make([]interface{}, 0, len(q.Filters))
	where, args, err := whereClause(q.Filters, args)
	if err != nil {
		return nil, err
	}
	builder.WriteString(where)

	if q.Order != nil {
		if err := checkIdentifiers(q.Order.Column); err != nil {
			return nil, err
		}
		builder.WriteString(" ORDER BY ")
		builder.WriteString(q.Order.Column)
		if q.Order.Desc {
			builder.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		builder.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}

	records, err := g.query(ctx, "select:"+table, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return records, nil
}

// Insert writes row into table and returns the stored row.
func (g *RecordGateway) Insert(ctx context.Context, table string, row models.Record) ([]models.Record, error) {
	columns := sortedColumns(row)
	if err := checkIdentifiers(append([]string{table}, columns...)...); err != nil {
		return nil, err
	}

	var query string
	args := make([]interface{}, 0, len(columns))
	if len(columns) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", table)
	} else {
		placeholders := make([]string, len(columns))
		for i, column := range columns {
			args = append(args, row[column])
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	}

	records, err := g.query(ctx, "insert:"+table, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return records, nil
}

// Update applies patch to the rows of table matching filters and returns the
// updated rows.
func (g *RecordGateway) Update(ctx context.Context, table string, filters []models.Filter, patch models.Record) ([]models.Record, error) {
	columns := sortedColumns(patch)
	if len(columns) == 0 || len(filters) == 0 {
		return nil, ErrEmptyUpdate
	}
	if err := checkIdentifiers(append([]string{table}, columns...)...); err != nil {
		return nil, err
	}

	assignments := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns)+len(filters))
	for i, column := range columns {
		args = append(args, patch[column])
		assignments[i] = fmt.Sprintf("%s = $%d", column, len(args))
	}
	where, args, err := whereClause(filters, args)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", table, strings.Join(assignments, ", "), where)

	records, err := g.query(ctx, "update:"+table, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return records, nil
}

// Ping checks database connectivity.
func (g *RecordGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *RecordGateway) query(ctx context.Context, label, query string, args ...interface{}) ([]models.Record, error) {
	start := time.Now()
	defer func() {
		if g.observer != nil {
			g.observer.ObserveDBQuery(label, time.Since(start))
		}
	}()

	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for column, value := range row {
			if raw, ok := value.([]byte); ok {
				row[column] = string(raw)
			}
		}
		records = append(records, models.Record(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func whereClause(filters []models.Filter, args []interface{}) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", args, nil
	}
	conditions := make([]string, 0, len(filters))
	for _, filter := range filters {
		if err := checkIdentifiers(filter.Column); err != nil {
			return "", nil, err
		}
		args = append(args, filter.Value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", filter.Column, len(args)))
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func sortedColumns(row models.Record) []string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func checkIdentifiers(names ...string) error {
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}
