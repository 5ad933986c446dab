package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/version"
)

// Config represents the configuration for nsqlite-mcp-console.
type Config struct {
	DBPath      string        `arg:"positional,required" help:"The file path for the SQLite database"`
	Driver      string        `arg:"--driver,env:NSQLITE_MCP_DRIVER" help:"SQLite driver to use (sqlite3, sqlite)" default:"sqlite3"`
	BusyTimeout time.Duration `arg:"--busy-timeout,env:NSQLITE_MCP_BUSY_TIMEOUT" help:"How long to wait on a locked database" default:"5s"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ConsoleVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := validate(cfg); err != nil {
		log.Fatal(err)
	}

	return cfg
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("database path is required")
	}
	if _, err := gateway.ParseDriver(cfg.Driver); err != nil {
		return err
	}
	if cfg.BusyTimeout <= 0 {
		return errors.New("invalid busy timeout, must be greater than zero")
	}
	return nil
}
