// Package gateway turns structured tool invocations into parameterized SQL
// statements against one SQLite database file and turns result rows into
// serializable records.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/pooler"
)

// Config represents the configuration for a Gateway.
type Config struct {
	// Logger is the shared logger.
	Logger log.Logger
	// DBPath is the database file path, resolved to an absolute path by New.
	DBPath string
	// Driver is the engine binding, defaults to DriverMattn.
	Driver Driver
	// KeepConnection keeps one idle connection between calls. When false a
	// new connection is opened for every call and closed afterwards.
	KeepConnection bool
	// QueryOnly makes RunSelect reject statements that write.
	QueryOnly bool
	// BusyTimeout is how long the engine waits on a locked database.
	BusyTimeout time.Duration
}

// Gateway executes one statement per operation against the configured
// database file.
type Gateway struct {
	Config
	isInitialized bool
	dsn           string
	pool          *pooler.Pool[*sql.DB]
}

// New creates a Gateway. The database file is not touched until the first
// operation that needs a connection.
func New(config Config) (*Gateway, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.DBPath == "" {
		return nil, errors.New("database path is required")
	}
	if config.Driver == (Driver{}) {
		config.Driver = DriverMattn
	}
	if _, err := ParseDriver(config.Driver.Value); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	config.DBPath = absPath

	dsn := createDSN(config.Driver, config.DBPath, config.BusyTimeout)
	driver := config.Driver
	return newGateway(config, dsn, func(ctx context.Context) (*sql.DB, error) {
		return openDB(ctx, driver, dsn)
	})
}

// newGateway wires a Gateway around an arbitrary opener.
func newGateway(
	config Config, dsn string, open func(ctx context.Context) (*sql.DB, error),
) (*Gateway, error) {
	maxIdle := 0
	if config.KeepConnection {
		maxIdle = 1
	}

	pool, err := pooler.NewPool(pooler.Config[*sql.DB]{
		MaxItems:  1,
		MaxIdle:   maxIdle,
		NewFunc:   open,
		CloseFunc: func(db *sql.DB) error { return db.Close() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Gateway{
		Config:        config,
		isInitialized: true,
		dsn:           dsn,
		pool:          pool,
	}, nil
}

// IsInitialized returns whether the Gateway was created with New.
func (g *Gateway) IsInitialized() bool {
	return g != nil && g.isInitialized
}

// Close closes any idle connection.
func (g *Gateway) Close() error {
	if err := g.pool.Close(); err != nil {
		return fmt.Errorf("failed to close connections: %w", err)
	}
	return nil
}

// Ping opens (or reuses) a connection and checks it responds.
func (g *Gateway) Ping(ctx context.Context) error {
	start := time.Now()
	err := g.withConn(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
	return g.finish(OpPing, start, err)
}

// withConn checks out the database handle, pins one connection for the
// duration of fn and gives the handle back to the pool.
func (g *Gateway) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	db, err := g.pool.Get(ctx)
	if err != nil {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = g.pool.Discard(db)
		return fmt.Errorf("failed to get connection: %w", err)
	}

	fnErr := fn(conn)

	if err := conn.Close(); err != nil {
		g.Logger.WarnNs(log.NsGateway, "failed to release connection", log.KV{"error": err})
	}
	if err := g.pool.Put(db); err != nil {
		g.Logger.WarnNs(log.NsGateway, "failed to close connection", log.KV{"error": err})
	}

	return fnErr
}

// finish classifies err for op and logs the outcome at debug level.
func (g *Gateway) finish(op Operation, start time.Time, err error) error {
	kv := log.KV{
		"op":       op.Value,
		"duration": time.Since(start).String(),
	}
	if err == nil {
		g.Logger.DebugNs(log.NsGateway, "operation succeeded", kv)
		return nil
	}

	wrapped := wrapError(op, err)
	kv["kind"] = KindOf(wrapped).Value
	kv["error"] = err.Error()
	g.Logger.DebugNs(log.NsGateway, "operation failed", kv)
	return wrapped
}
