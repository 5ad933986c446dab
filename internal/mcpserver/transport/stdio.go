package transport

import (
	"context"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/server"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
)

// ServeStdio serves mcpServer over newline delimited JSON-RPC on stdin and
// stdout until ctx is done or stdin is closed.
func ServeStdio(
	ctx context.Context, logger log.Logger, mcpServer *server.MCPServer,
	stdin io.Reader, stdout io.Writer,
) error {
	logger.InfoNs(log.NsServer, "stdio transport started")

	err := server.NewStdioServer(mcpServer).Listen(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
