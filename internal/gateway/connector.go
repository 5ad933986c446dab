package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/orsinium-labs/enum"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver selects the embedded engine binding used to open the database.
type Driver enum.Member[string]

var (
	// DriverMattn is github.com/mattn/go-sqlite3, the cgo binding.
	DriverMattn = Driver{Value: "sqlite3"}
	// DriverModernc is modernc.org/sqlite, the pure Go binding.
	DriverModernc = Driver{Value: "sqlite"}
)

// Drivers lists the supported drivers.
var Drivers = []Driver{DriverMattn, DriverModernc}

// ParseDriver returns the Driver registered under name.
func ParseDriver(name string) (Driver, error) {
	for _, d := range Drivers {
		if d.Value == name {
			return d, nil
		}
	}

	valid := make([]string, len(Drivers))
	for i, d := range Drivers {
		valid[i] = d.Value
	}
	return Driver{}, fmt.Errorf(
		"invalid driver %q, valid values are: %s", name, strings.Join(valid, ", "),
	)
}

const defaultBusyTimeout = 5 * time.Second

// createDSN builds the data source name for the given driver. Both drivers
// get foreign keys enabled and a busy timeout.
func createDSN(driver Driver, dbPath string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}
	timeoutMs := fmt.Sprintf("%d", busyTimeout.Milliseconds())

	qp := url.Values{}
	if driver == DriverModernc {
		qp.Add("_pragma", "busy_timeout("+timeoutMs+")")
		qp.Add("_pragma", "foreign_keys(1)")
		return fmt.Sprintf("%s?%s", dbPath, qp.Encode())
	}

	qp.Add("_busy_timeout", timeoutMs)
	qp.Add("_foreign_keys", "true")
	return fmt.Sprintf("file:%s?%s", dbPath, qp.Encode())
}

// openDB opens a handle restricted to a single connection and makes sure
// the file can actually be opened.
func openDB(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver.Value, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
