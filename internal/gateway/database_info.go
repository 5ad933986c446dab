package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/nsqlite/nsqlite-mcp/internal/log"
)

// DatabaseInfo is the metadata returned by DescribeDatabase.
type DatabaseInfo struct {
	DBPath       string  `json:"dbPath"`
	Exists       bool    `json:"exists"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified"`
	TableCount   int     `json:"tableCount"`
}

// DescribeDatabase reports path, existence, size, modification time and
// number of user tables. A missing file is reported, not treated as a
// failure, and is never created.
func (g *Gateway) DescribeDatabase(ctx context.Context) (DatabaseInfo, error) {
	start := time.Now()
	info := DatabaseInfo{DBPath: g.DBPath}

	stat, err := os.Stat(g.DBPath)
	if errors.Is(err, fs.ErrNotExist) {
		return info, g.finish(OpDescribeDatabase, start, nil)
	}
	if err != nil {
		return info, g.finish(OpDescribeDatabase, start, fmt.Errorf("failed to stat database: %w", err))
	}
	if stat.IsDir() {
		return info, g.finish(OpDescribeDatabase, start, invalidArgumentf("%s is a directory", g.DBPath))
	}

	modified := stat.ModTime().Format(time.RFC3339Nano)
	info.Exists = true
	info.Size = stat.Size()
	info.LastModified = &modified

	err = g.withConn(ctx, func(conn *sql.Conn) error {
		tables, err := listTables(ctx, conn)
		if err != nil {
			return err
		}
		info.TableCount = len(tables)
		return nil
	})
	if err != nil {
		g.Logger.WarnNs(log.NsGateway, "failed to count tables", log.KV{
			"path":  g.DBPath,
			"error": err,
		})
	}

	return info, g.finish(OpDescribeDatabase, start, nil)
}
