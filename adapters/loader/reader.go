// Package loader materializes tables from CSV, XLSX and Parquet files.
// Loader failures (missing file, unsupported extension, size limits) are
// distinct load-time errors surfaced before the profiling core ever runs.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabprof/domain/table"
	"tabprof/internal/config"
	"tabprof/internal/errors"
)

// Load reads a table from path, dispatching on the file extension.
// The first row is always treated as the header.
func Load(ctx context.Context, path string, limits config.Limits) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.LoadFailed(fmt.Sprintf("input file not found: %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path, limits)
	case ".xlsx":
		return loadXLSX(path, limits)
	case ".parquet":
		return loadParquet(ctx, path, limits)
	default:
		return nil, errors.New(errors.CodeInvalidInput,
			fmt.Sprintf("unsupported file extension %q: want .csv, .xlsx or .parquet", filepath.Ext(path)))
	}
}

func loadCSV(path string, limits config.Limits) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows padded below

	header, err := r.Read()
	if err == io.EOF {
		return table.New(nil)
	}
	if err != nil {
		return nil, errors.LoadFailed("failed to read CSV header", err)
	}

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.LoadFailed("failed to read CSV row", err)
		}
		records = append(records, record)
	}
	return fromRows(header, records, limits)
}

func loadXLSX(path string, limits config.Limits) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.New(nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	if len(rows) == 0 {
		return table.New(nil)
	}
	return fromRows(rows[0], rows[1:], limits)
}

// fromRows coerces raw string rows into typed columns. Ragged rows are
// padded with missing cells so the equal-length table invariant holds.
func fromRows(header []string, records [][]string, limits config.Limits) (*table.Table, error) {
	if err := checkLimits(len(records), len(header), limits); err != nil {
		return nil, err
	}

	cols := make([]table.Column, len(header))
	for i, name := range header {
		cols[i] = table.Column{
			Name:   strings.TrimSpace(name),
			Values: make([]table.Value, len(records)),
		}
	}
	for r, record := range records {
		for c := range cols {
			if c < len(record) {
				cols[c].Values[r] = ParseCell(record[c])
			} else {
				cols[c].Values[r] = table.NewMissingValue()
			}
		}
	}
	tbl, err := table.New(cols)
	if err != nil {
		return nil, errors.LoadFailed("invalid table structure", err)
	}
	return tbl, nil
}

// checkLimits raises the distinct size error before the core runs
func checkLimits(rows, cols int, limits config.Limits) error {
	if limits.MaxRows > 0 && rows > limits.MaxRows {
		return errors.DataSize(fmt.Sprintf("dataset exceeds %d rows limit (%d rows)", limits.MaxRows, rows))
	}
	if limits.MaxCols > 0 && cols > limits.MaxCols {
		return errors.DataSize(fmt.Sprintf("dataset exceeds %d columns limit (%d columns)", limits.MaxCols, cols))
	}
	return nil
}
