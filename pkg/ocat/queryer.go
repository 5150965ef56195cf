package ocat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
)

// Queryer is the subset of pgx.Conn and pgxpool.Pool the reader needs.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// ErrNoResult reports an obsid with no catalog record.
type ErrNoResult struct {
	Obsid int64
}

func (e ErrNoResult) Error() string {
	return fmt.Sprintf("no catalog record for obsid %d", e.Obsid)
}

// ErrMultipleResults reports an obsid with more than one catalog record,
// which indicates catalog corruption.
type ErrMultipleResults struct {
	Obsid int64
}

func (e ErrMultipleResults) Error() string {
	return fmt.Sprintf("multiple catalog records for obsid %d", e.Obsid)
}

// collectRows drains a result set into one map per row, keyed by column
// name.
func collectRows(rows pgx.Rows) ([]map[string]interface{}, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(fields))
		for i, fd := range fields {
			record[string(fd.Name)] = values[i]
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (r *Reader) fetch(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}
