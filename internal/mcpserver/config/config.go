package config

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/util/cryptoutil"
	"github.com/nsqlite/nsqlite-mcp/internal/version"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the configuration for nsqlite-mcp.
type Config struct {
	DBPath             string        `arg:"--db-path,required,env:NSQLITE_MCP_DB_PATH" help:"The file path for the SQLite database"`
	Driver             string        `arg:"--driver,env:NSQLITE_MCP_DRIVER" help:"SQLite driver to use (sqlite3, sqlite)" default:"sqlite3"`
	KeepConnection     bool          `arg:"--keep-connection,env:NSQLITE_MCP_KEEP_CONNECTION" help:"Keep one idle connection open between tool calls instead of opening one per call" default:"false"`
	QueryOnly          bool          `arg:"--query-only,env:NSQLITE_MCP_QUERY_ONLY" help:"Make the query tool reject statements that write to the database" default:"false"`
	BusyTimeout        time.Duration `arg:"--busy-timeout,env:NSQLITE_MCP_BUSY_TIMEOUT" help:"How long to wait on a locked database. Valid time units are ns, us (or µs), ms, s, m, h" default:"5s"`
	Transport          string        `arg:"--transport,env:NSQLITE_MCP_TRANSPORT" help:"Transport to serve the tools on (stdio, http)" default:"stdio"`
	ListenAddr         string        `arg:"--listen-addr,env:NSQLITE_MCP_LISTEN_ADDR" help:"Address for the http transport to listen on" default:"127.0.0.1"`
	ListenPort         string        `arg:"--listen-port,env:NSQLITE_MCP_LISTEN_PORT" help:"Port for the http transport to listen on" default:"9877"`
	AuthTokenAlgorithm string        `arg:"--auth-token-algorithm,env:NSQLITE_MCP_AUTH_TOKEN_ALGORITHM" help:"Hash algorithm for the auth token (plaintext, argon2, bcrypt)" default:"plaintext"`
	AuthToken          string        `arg:"--auth-token,env:NSQLITE_MCP_AUTH_TOKEN" help:"Pre-hashed auth token for the http transport; leave empty to disable authentication"`
	LogLevel           string        `arg:"--log-level,env:NSQLITE_MCP_LOG_LEVEL" help:"Minimum log level (debug, info, warn, error)" default:"info"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ServerVersion())
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

// validate runs every validator against cfg.
func validate(cfg Config) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("database path is required")
	}
	if _, err := gateway.ParseDriver(cfg.Driver); err != nil {
		return err
	}
	if err := validateBusyTimeout(cfg.BusyTimeout); err != nil {
		return err
	}
	if err := validateTransport(cfg.Transport); err != nil {
		return err
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Transport != TransportHTTP {
		return nil
	}
	if err := validateListenAddr(cfg.ListenAddr); err != nil {
		return err
	}
	if err := validateListenPort(cfg.ListenPort); err != nil {
		return err
	}
	return validateAuthTokenAlgorithm(cfg.AuthTokenAlgorithm)
}

// validateListenAddr validates if addr is a valid ip address.
func validateListenAddr(addr string) error {
	re := regexp.MustCompile(`^([0-9]{1,3}\.){3}[0-9]{1,3}$`)
	if !re.MatchString(addr) {
		return errors.New("invalid listen address")
	}
	return nil
}

// validateListenPort validates if port is a valid port number.
func validateListenPort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 || strings.HasPrefix(port, "+") {
		return errors.New("invalid listen port, valid values are 1-65535")
	}
	return nil
}

// validateOneOf returns an error listing valid if value is not one of them.
func validateOneOf(what string, value string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid %s, valid values are: %s", what, strings.Join(valid, ", "),
	)
}

// validateAuthTokenAlgorithm validates if algorithm is a valid auth algorithm.
func validateAuthTokenAlgorithm(algorithm string) error {
	return validateOneOf("auth algorithm", algorithm, cryptoutil.Algorithms)
}

// validateTransport validates if transport is a supported transport.
func validateTransport(transport string) error {
	return validateOneOf("transport", transport, []string{TransportStdio, TransportHTTP})
}

// validateLogLevel validates if level is a known log level.
func validateLogLevel(level string) error {
	return validateOneOf("log level", level, []string{"debug", "info", "warn", "error"})
}

// validateBusyTimeout validates if timeout is greater than zero.
func validateBusyTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return errors.New("invalid busy timeout, must be greater than zero")
	}
	return nil
}
