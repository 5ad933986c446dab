package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nsqlite/nsqlite-mcp/internal/log"
)

// RunSelect executes sqlText with params bound to its placeholders and
// returns every result row. The statement is not checked for being read
// only unless the gateway runs with QueryOnly.
func (g *Gateway) RunSelect(ctx context.Context, sqlText string, params []any) ([]Record, error) {
	start := time.Now()
	if strings.TrimSpace(sqlText) == "" {
		return nil, g.finish(OpRunSelect, start, invalidArgumentf("sql statement is empty"))
	}

	var records []Record
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		args, err := normalizeValues(params)
		if err != nil {
			return err
		}

		if g.QueryOnly {
			if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
				return err
			}
			defer func() {
				if _, err := conn.ExecContext(context.Background(), "PRAGMA query_only = OFF"); err != nil {
					g.Logger.WarnNs(log.NsGateway, "failed to reset query_only", log.KV{"error": err})
				}
			}()
		}

		records, err = queryRecords(ctx, conn, sqlText, args)
		return err
	})
	return records, g.finish(OpRunSelect, start, err)
}

// InsertRecord inserts one row built from values and commits it.
func (g *Gateway) InsertRecord(ctx context.Context, table string, values Fields) (WriteSummary, error) {
	start := time.Now()
	var summary WriteSummary
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		name, err := resolveTable(ctx, conn, table)
		if err != nil {
			return err
		}
		resolved, err := resolveColumns(ctx, conn, name, values)
		if err != nil {
			return err
		}

		query, args, err := buildInsert(name, resolved)
		if err != nil {
			return err
		}
		summary, err = execWrite(ctx, conn, query, args)
		return err
	})
	return summary, g.finish(OpInsertRecord, start, err)
}

// ReadRecords returns the rows of table matching every condition.
func (g *Gateway) ReadRecords(ctx context.Context, table string, opts ReadOptions) ([]Record, error) {
	start := time.Now()
	if opts.Offset != nil && opts.Limit == nil {
		g.Logger.WarnNs(log.NsGateway, "offset ignored without limit", log.KV{
			"table":  table,
			"offset": *opts.Offset,
		})
	}

	var records []Record
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		name, err := resolveTable(ctx, conn, table)
		if err != nil {
			return err
		}
		opts.Conditions, err = resolveColumns(ctx, conn, name, opts.Conditions)
		if err != nil {
			return err
		}

		query, args, err := buildSelect(name, opts)
		if err != nil {
			return err
		}
		records, err = queryRecords(ctx, conn, query, args)
		return err
	})
	return records, g.finish(OpReadRecords, start, err)
}

// UpdateRecords sets values on every row of table matching conditions.
func (g *Gateway) UpdateRecords(
	ctx context.Context, table string, values Fields, conditions Fields,
) (WriteSummary, error) {
	start := time.Now()
	var summary WriteSummary
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		name, err := resolveTable(ctx, conn, table)
		if err != nil {
			return err
		}
		resolvedValues, err := resolveColumns(ctx, conn, name, values)
		if err != nil {
			return err
		}
		resolvedConditions, err := resolveColumns(ctx, conn, name, conditions)
		if err != nil {
			return err
		}

		query, args, err := buildUpdate(name, resolvedValues, resolvedConditions)
		if err != nil {
			return err
		}
		summary, err = execWrite(ctx, conn, query, args)
		return err
	})
	return summary, g.finish(OpUpdateRecords, start, err)
}

// DeleteRecords removes every row of table matching conditions.
func (g *Gateway) DeleteRecords(ctx context.Context, table string, conditions Fields) (WriteSummary, error) {
	start := time.Now()
	var summary WriteSummary
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		name, err := resolveTable(ctx, conn, table)
		if err != nil {
			return err
		}
		resolved, err := resolveColumns(ctx, conn, name, conditions)
		if err != nil {
			return err
		}

		query, args, err := buildDelete(name, resolved)
		if err != nil {
			return err
		}
		summary, err = execWrite(ctx, conn, query, args)
		return err
	})
	return summary, g.finish(OpDeleteRecords, start, err)
}

func queryRecords(ctx context.Context, conn *sql.Conn, query string, args []any) ([]Record, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// execWrite runs one write statement in a transaction and commits it,
// reporting the connection's last insert id and total changes.
func execWrite(ctx context.Context, conn *sql.Conn, query string, args []any) (WriteSummary, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return WriteSummary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	rollback := func(cause error) (WriteSummary, error) {
		_ = tx.Rollback()
		return WriteSummary{}, cause
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return rollback(err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return rollback(fmt.Errorf("failed to get last insert ID: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return rollback(fmt.Errorf("failed to get rows affected: %w", err))
	}

	var totalChanges int64
	if err := tx.QueryRowContext(ctx, "SELECT total_changes()").Scan(&totalChanges); err != nil {
		return rollback(fmt.Errorf("failed to get total changes: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return WriteSummary{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return WriteSummary{
		LastInsertID:      lastInsertID,
		TotalChangesCount: totalChanges,
		RowsAffected:      rowsAffected,
	}, nil
}
