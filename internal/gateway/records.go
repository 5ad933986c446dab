package gateway

import (
	"database/sql"
	"fmt"
)

// Record is one result row keyed by column name.
type Record map[string]any

// WriteSummary is the result of a write operation.
type WriteSummary struct {
	LastInsertID      int64 `json:"lastInsertId"`
	TotalChangesCount int64 `json:"totalChangesCount"`
	RowsAffected      int64 `json:"rowsAffected"`
}

// scanRecords reads every row into a Record. Values keep the type the driver
// returned for their storage class, so BLOB data stays []byte.
//
// A statement without result columns (an empty statement, or an empty tail
// such as a trailing comment) yields no records. mattn/go-sqlite3 reports
// such rows as never ending, so they are not iterated.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	records := []Record{}
	if len(columns) == 0 {
		return records, nil
	}

	for rows.Next() {
		row := make([]any, len(columns))
		scans := make([]any, len(columns))
		for i := range scans {
			scans[i] = &row[i]
		}

		if err := rows.Scan(scans...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(Record, len(columns))
		for i, col := range columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
