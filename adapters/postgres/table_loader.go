// Package postgres loads a SQL table or view into the in-memory table
// model so it can be profiled like any file input.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tabprof/adapters/loader"
	"tabprof/domain/table"
	"tabprof/internal/config"
	"tabprof/internal/errors"
)

// Connect opens a database handle and verifies the connection
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.LoadFailed("failed to connect to postgres", err)
	}
	return db, nil
}

// TableLoader reads relations into tables
type TableLoader struct {
	db *sqlx.DB
}

// NewTableLoader creates a loader over an open handle
func NewTableLoader(db *sqlx.DB) *TableLoader {
	return &TableLoader{db: db}
}

// Load materializes up to limits.MaxRows rows of the named relation.
// Driver-native types map directly onto table values; text columns go
// through the same cell coercion as file loaders.
func (l *TableLoader) Load(ctx context.Context, relation string, limits config.Limits) (*table.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(relation))
	if limits.MaxRows > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limits.MaxRows+1)
	}

	rows, err := l.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to query relation %q", relation), err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.LoadFailed("failed to read column names", err)
	}
	if limits.MaxCols > 0 && len(names) > limits.MaxCols {
		return nil, errors.DataSize(fmt.Sprintf("relation exceeds %d columns limit (%d columns)", limits.MaxCols, len(names)))
	}

	cols := make([]table.Column, len(names))
	for i, name := range names {
		cols[i] = table.Column{Name: name}
	}

	count := 0
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, errors.LoadFailed("failed to scan row", err)
		}
		count++
		if limits.MaxRows > 0 && count > limits.MaxRows {
			return nil, errors.DataSize(fmt.Sprintf("relation exceeds %d rows limit", limits.MaxRows))
		}
		for i := range cols {
			cols[i].Values = append(cols[i].Values, driverValue(raw[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.LoadFailed("row iteration failed", err)
	}

	tbl, err := table.New(cols)
	if err != nil {
		return nil, errors.LoadFailed("invalid table structure", err)
	}
	return tbl, nil
}

func driverValue(raw interface{}) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.NewMissingValue()
	case int64:
		return table.NewNumericValue(float64(v))
	case float64:
		return table.NewNumericValue(v)
	case bool:
		return table.NewBooleanValue(v)
	case time.Time:
		return table.NewTimestampValue(v)
	case []byte:
		return loader.ParseCell(string(v))
	case string:
		return loader.ParseCell(v)
	}
	return loader.ParseCell(fmt.Sprintf("%v", raw))
}
