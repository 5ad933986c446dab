package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
)

// Failure is the JSON text of every failed tool call.
type Failure struct {
	ID      string `json:"id"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// call describes one tool invocation while it is handled.
type call struct {
	name    string
	phrase  string
	started time.Time
	count   func(*stats.ToolStats)
}

// Counters for successful calls. Raw statements are counted on their own
// since they may read or write.
var (
	countRead  = (*stats.ToolStats).IncReads
	countWrite = (*stats.ToolStats).IncWrites
	countQuery = (*stats.ToolStats).IncQueries
)

func newCall(name, phrase string, count func(*stats.ToolStats)) call {
	return call{name: name, phrase: phrase, started: time.Now(), count: count}
}

// invalidArgument marks a malformed tool argument.
func invalidArgument(op gateway.Operation, err error) error {
	return &gateway.Error{Op: op, Kind: gateway.KindInvalidArgument, Err: err}
}

// success serializes payload as indented JSON into a text result.
func (t *Tools) success(c call, payload any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return t.failure(c, fmt.Errorf("failed to encode result: %w", err))
	}

	if t.Stats != nil {
		c.count(t.Stats)
	}

	t.Logger.InfoNs(log.NsTools, "tool call succeeded", log.KV{
		"tool":     c.name,
		"duration": time.Since(c.started).String(),
	})
	return mcp.NewToolResultText(string(b)), nil
}

// failure turns err into an error result. The id ties the result to the
// log line carrying the full error.
func (t *Tools) failure(c call, err error) (*mcp.CallToolResult, error) {
	failure := Failure{
		ID:      uuid.NewString(),
		Error:   c.phrase,
		Kind:    gateway.KindOf(err).Value,
		Message: err.Error(),
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		failure.Message = gerr.Message()
	}

	if t.Stats != nil {
		t.Stats.IncFailures()
	}

	t.Logger.ErrorNs(log.NsTools, "tool call failed", log.KV{
		"id":       failure.ID,
		"tool":     c.name,
		"kind":     failure.Kind,
		"error":    err.Error(),
		"duration": time.Since(c.started).String(),
	})

	b, err := json.MarshalIndent(failure, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(c.phrase), nil
	}
	return mcp.NewToolResultError(string(b)), nil
}
