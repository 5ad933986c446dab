package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpserver/config"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpserver/transport"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
	"github.com/nsqlite/nsqlite-mcp/internal/tools"
	"github.com/nsqlite/nsqlite-mcp/internal/version"
)

// Run runs the SQLite tool server.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout belongs to the stdio transport.
	logger := log.NewLogger(os.Stderr, conf.LogLevel)

	driver, err := gateway.ParseDriver(conf.Driver)
	if err != nil {
		return err
	}

	gw, err := gateway.New(gateway.Config{
		Logger:         logger,
		DBPath:         conf.DBPath,
		Driver:         driver,
		KeepConnection: conf.KeepConnection,
		QueryOnly:      conf.QueryOnly,
		BusyTimeout:    conf.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("error creating gateway: %w", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logger.Error("error closing gateway", log.KV{"error": err})
		}
	}()

	logger.Info("starting SQLite tool server", log.KV{
		"db_path":         gw.DBPath,
		"driver":          gw.Driver.Value,
		"transport":       conf.Transport,
		"keep_connection": conf.KeepConnection,
		"query_only":      conf.QueryOnly,
	})

	toolStats := stats.NewToolStats()
	defer func() {
		toolStats.Close()
		logger.Info("tool call totals", log.KV{"stats": toolStats.LoadStats().Totals})
	}()

	toolSet, err := tools.New(tools.Config{
		Logger:  logger,
		Gateway: gw,
		Stats:   toolStats,
	})
	if err != nil {
		return fmt.Errorf("error creating tools: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"SQLiteServer",
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	toolSet.Register(mcpServer)

	if conf.Transport == config.TransportHTTP {
		return serveHTTP(ctx, stop, logger, conf, mcpServer, gw)
	}

	if err := transport.ServeStdio(ctx, logger, mcpServer, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("stdio transport stopped with error: %w", err)
	}
	logger.Info("goodbye! shutting down SQLite tool server")
	return nil
}

func serveHTTP(
	ctx context.Context, stop context.CancelFunc, logger log.Logger,
	conf config.Config, mcpServer *server.MCPServer, gw *gateway.Gateway,
) error {
	serv, err := transport.NewServer(transport.Config{
		Logger:             logger,
		MCPServer:          mcpServer,
		Gateway:            gw,
		ListenHost:         conf.ListenAddr,
		ListenPort:         conf.ListenPort,
		AuthTokenAlgorithm: conf.AuthTokenAlgorithm,
		AuthToken:          conf.AuthToken,
	})
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := serv.Stop(shutdownCtx); err != nil {
			logger.Error("error stopping server", log.KV{"error": err})
		}
	}()
	go func() {
		if err := serv.Start(); err != nil {
			logger.Error("server stopped with error", log.KV{"error": err})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("goodbye! gracefully shutting down SQLite tool server")
	return nil
}
