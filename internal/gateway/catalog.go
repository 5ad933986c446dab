package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// listTablesSQL lists user tables, leaving out the engine's own.
	listTablesSQL = "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	// lookupTableSQL resolves a caller supplied name to its catalog spelling.
	lookupTableSQL = "SELECT name FROM sqlite_master WHERE type IN ('table', 'view') AND name = ? COLLATE NOCASE AND name NOT LIKE 'sqlite_%'"
	// tableInfoSQL returns cid, name, type, notnull, dflt_value, pk.
	tableInfoSQL = "SELECT * FROM pragma_table_info(?)"
)

// TableName is one entry of ListTables.
type TableName struct {
	Name string `json:"name"`
}

// Column describes one column of a table.
type Column struct {
	Cid          int64  `json:"cid"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	NotNull      bool   `json:"notnull"`
	DefaultValue any    `json:"dflt_value"`
	PrimaryKey   int64  `json:"pk"`
}

// ListTables returns the user tables of the database in catalog order.
func (g *Gateway) ListTables(ctx context.Context) ([]TableName, error) {
	start := time.Now()
	var tables []TableName
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		tables, err = listTables(ctx, conn)
		return err
	})
	return tables, g.finish(OpListTables, start, err)
}

// DescribeTable returns the column metadata of table.
func (g *Gateway) DescribeTable(ctx context.Context, table string) ([]Column, error) {
	start := time.Now()
	var columns []Column
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		name, err := resolveTable(ctx, conn, table)
		if err != nil {
			return err
		}
		columns, err = tableColumns(ctx, conn, name)
		return err
	})
	return columns, g.finish(OpDescribeTable, start, err)
}

func listTables(ctx context.Context, conn *sql.Conn) ([]TableName, error) {
	rows, err := conn.QueryContext(ctx, listTablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []TableName{}
	for rows.Next() {
		var t TableName
		if err := rows.Scan(&t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// resolveTable returns the catalog spelling of table, failing with
// KindNotFound when the catalog has no such table or view.
func resolveTable(ctx context.Context, conn *sql.Conn, table string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", invalidArgumentf("table name is required")
	}

	var name string
	err := conn.QueryRowContext(ctx, lookupTableSQL, table).Scan(&name)
	if err == sql.ErrNoRows {
		return "", notFoundf("no such table: %s", table)
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func tableColumns(ctx context.Context, conn *sql.Conn, table string) ([]Column, error) {
	rows, err := conn.QueryContext(ctx, tableInfoSQL, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []Column{}
	for rows.Next() {
		var (
			c       Column
			colType sql.NullString
			notNull int64
		)
		if err := rows.Scan(&c.Cid, &c.Name, &colType, &notNull, &c.DefaultValue, &c.PrimaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		c.Type = colType.String
		c.NotNull = notNull != 0
		if b, ok := c.DefaultValue.([]byte); ok {
			c.DefaultValue = string(b)
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// resolveColumns maps every field column to its catalog spelling for table.
// The returned Fields keep the caller's order and values.
func resolveColumns(
	ctx context.Context, conn *sql.Conn, table string, fields Fields,
) (Fields, error) {
	if len(fields) == 0 {
		return fields, nil
	}

	columns, err := tableColumns(ctx, conn, table)
	if err != nil {
		return nil, err
	}

	known := make(map[string]string, len(columns))
	for _, c := range columns {
		known[strings.ToLower(c.Name)] = c.Name
	}

	resolved := make(Fields, len(fields))
	for i, f := range fields {
		name, ok := known[strings.ToLower(f.Column)]
		if !ok {
			return nil, notFoundf("no such column: %s", f.Column)
		}
		value, err := normalizeValue(f.Value)
		if err != nil {
			return nil, invalidArgumentf("column %s: %v", f.Column, err)
		}
		resolved[i] = Field{Column: name, Value: value}
	}
	return resolved, nil
}

var plainIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteKeywords is the engine's keyword list, see
// https://www.sqlite.org/lang_keywords.html.
var sqliteKeywords = makeKeywordSet(`ABORT ACTION ADD AFTER ALL ALTER ALWAYS ANALYZE AND AS ASC
ATTACH AUTOINCREMENT BEFORE BEGIN BETWEEN BY CASCADE CASE CAST CHECK COLLATE COLUMN COMMIT
CONFLICT CONSTRAINT CREATE CROSS CURRENT CURRENT_DATE CURRENT_TIME CURRENT_TIMESTAMP DATABASE
DEFAULT DEFERRABLE DEFERRED DELETE DESC DETACH DISTINCT DO DROP EACH ELSE END ESCAPE EXCEPT
EXCLUDE EXCLUSIVE EXISTS EXPLAIN FAIL FILTER FIRST FOLLOWING FOR FOREIGN FROM FULL GENERATED
GLOB GROUP GROUPS HAVING IF IGNORE IMMEDIATE IN INDEX INDEXED INITIALLY INNER INSERT INSTEAD
INTERSECT INTO IS ISNULL JOIN KEY LAST LEFT LIKE LIMIT MATCH MATERIALIZED NATURAL NO NOT
NOTHING NOTNULL NULL NULLS OF OFFSET ON OR ORDER OTHERS OUTER OVER PARTITION PLAN PRAGMA
PRECEDING PRIMARY QUERY RAISE RANGE RECURSIVE REFERENCES REGEXP REINDEX RELEASE RENAME
REPLACE RESTRICT RETURNING RIGHT ROLLBACK ROW ROWS SAVEPOINT SELECT SET TABLE TEMP TEMPORARY
THEN TIES TO TRANSACTION TRIGGER UNBOUNDED UNION UNIQUE UPDATE USING VACUUM VALUES VIEW
VIRTUAL WHEN WHERE WINDOW WITH WITHOUT`)

func makeKeywordSet(list string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, kw := range strings.Fields(list) {
		set[kw] = struct{}{}
	}
	return set
}

// quoteIdent renders a catalog name for statement text. Plain identifiers
// are written as is, keywords and anything else are double-quoted.
func quoteIdent(name string) string {
	if plainIdentRe.MatchString(name) {
		if _, isKeyword := sqliteKeywords[strings.ToUpper(name)]; !isKeyword {
			return name
		}
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
