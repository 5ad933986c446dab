package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
)

type queryArgs struct {
	SQL    string `json:"sql"`
	Values []any  `json:"values"`
}

type tableSchemaArgs struct {
	TableName string `json:"tableName"`
}

type recordArgs struct {
	Table      string         `json:"table"`
	Data       gateway.Fields `json:"data"`
	Conditions gateway.Fields `json:"conditions"`
	Limit      *int64         `json:"limit"`
	Offset     *int64         `json:"offset"`
}

// bind decodes the request arguments into target.
func bind(op gateway.Operation, request mcp.CallToolRequest, target any) error {
	if err := request.BindArguments(target); err != nil {
		return invalidArgument(op, fmt.Errorf("invalid arguments: %w", err))
	}
	return nil
}

// requireString rejects empty and whitespace-only values.
func requireString(op gateway.Operation, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidArgument(op, fmt.Errorf("%s is required", name))
	}
	return nil
}

func (t *Tools) dbInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("db_info", "Failed to fetch database info.", countRead)

	info, err := t.Gateway.DescribeDatabase(ctx)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, info)
}

func (t *Tools) query(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("query", "Query execution failed.", countQuery)

	var args queryArgs
	if err := bind(gateway.OpRunSelect, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpRunSelect, "sql", args.SQL); err != nil {
		return t.failure(c, err)
	}

	records, err := t.Gateway.RunSelect(ctx, args.SQL, args.Values)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, records)
}

func (t *Tools) listingTables(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("listing_tables", "Failed to list tables.", countRead)

	tables, err := t.Gateway.ListTables(ctx)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, tables)
}

func (t *Tools) getTableSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("get_table_schema", "Failed to get table schema.", countRead)

	var args tableSchemaArgs
	if err := bind(gateway.OpDescribeTable, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpDescribeTable, "tableName", args.TableName); err != nil {
		return t.failure(c, err)
	}

	columns, err := t.Gateway.DescribeTable(ctx, args.TableName)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, columns)
}

func (t *Tools) createRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("create_record", "Insert operation failed.", countWrite)

	var args recordArgs
	if err := bind(gateway.OpInsertRecord, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpInsertRecord, "table", args.Table); err != nil {
		return t.failure(c, err)
	}

	summary, err := t.Gateway.InsertRecord(ctx, args.Table, args.Data)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, summary)
}

func (t *Tools) readRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("read_records", "Failed to read records.", countRead)

	var args recordArgs
	if err := bind(gateway.OpReadRecords, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpReadRecords, "table", args.Table); err != nil {
		return t.failure(c, err)
	}

	records, err := t.Gateway.ReadRecords(ctx, args.Table, gateway.ReadOptions{
		Conditions: args.Conditions,
		Limit:      args.Limit,
		Offset:     args.Offset,
	})
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, records)
}

func (t *Tools) updateRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("update_records", "Update operation failed.", countWrite)

	var args recordArgs
	if err := bind(gateway.OpUpdateRecords, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpUpdateRecords, "table", args.Table); err != nil {
		return t.failure(c, err)
	}

	summary, err := t.Gateway.UpdateRecords(ctx, args.Table, args.Data, args.Conditions)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, summary)
}

func (t *Tools) deleteRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := newCall("delete_records", "Delete operation failed.", countWrite)

	var args recordArgs
	if err := bind(gateway.OpDeleteRecords, request, &args); err != nil {
		return t.failure(c, err)
	}
	if err := requireString(gateway.OpDeleteRecords, "table", args.Table); err != nil {
		return t.failure(c, err)
	}

	summary, err := t.Gateway.DeleteRecords(ctx, args.Table, args.Conditions)
	if err != nil {
		return t.failure(c, err)
	}
	return t.success(c, summary)
}
