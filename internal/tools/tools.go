// Package tools exposes the gateway operations as MCP tools.
package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
)

// Gateway is the set of operations the tools dispatch to.
type Gateway interface {
	DescribeDatabase(ctx context.Context) (gateway.DatabaseInfo, error)
	RunSelect(ctx context.Context, sqlText string, params []any) ([]gateway.Record, error)
	ListTables(ctx context.Context) ([]gateway.TableName, error)
	DescribeTable(ctx context.Context, table string) ([]gateway.Column, error)
	InsertRecord(ctx context.Context, table string, values gateway.Fields) (gateway.WriteSummary, error)
	ReadRecords(ctx context.Context, table string, opts gateway.ReadOptions) ([]gateway.Record, error)
	UpdateRecords(ctx context.Context, table string, values, conditions gateway.Fields) (gateway.WriteSummary, error)
	DeleteRecords(ctx context.Context, table string, conditions gateway.Fields) (gateway.WriteSummary, error)
}

// Config represents the configuration for the tool set.
type Config struct {
	// Logger is the shared logger.
	Logger log.Logger
	// Gateway executes the statements.
	Gateway Gateway
	// Stats records every call, optional.
	Stats *stats.ToolStats
}

// Tools holds the tool handlers.
type Tools struct {
	Config
	isInitialized bool
}

// tool pairs a definition with its handler.
type tool struct {
	definition mcp.Tool
	handler    server.ToolHandlerFunc
}

// New creates the tool set.
func New(config Config) (*Tools, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.Gateway == nil {
		return nil, errors.New("gateway is required")
	}

	return &Tools{
		Config:        config,
		isInitialized: true,
	}, nil
}

// IsInitialized returns true if the tool set was created with New.
func (t *Tools) IsInitialized() bool {
	return t != nil && t.isInitialized
}

// Register adds every tool to s.
func (t *Tools) Register(s *server.MCPServer) {
	for _, tl := range t.list() {
		s.AddTool(tl.definition, tl.handler)
	}
}

func (t *Tools) list() []tool {
	return []tool{
		{definition: dbInfoTool, handler: t.dbInfo},
		{definition: queryTool, handler: t.query},
		{definition: listingTablesTool, handler: t.listingTables},
		{definition: getTableSchemaTool, handler: t.getTableSchema},
		{definition: createRecordTool, handler: t.createRecord},
		{definition: readRecordsTool, handler: t.readRecords},
		{definition: updateRecordsTool, handler: t.updateRecords},
		{definition: deleteRecordsTool, handler: t.deleteRecords},
	}
}
