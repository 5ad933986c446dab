package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_validateListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{
			name:    "valid ip address",
			addr:    "127.0.0.1",
			wantErr: false,
		},
		{
			name:    "valid ip address zeros",
			addr:    "0.0.0.0",
			wantErr: false,
		},
		{
			name:    "invalid string",
			addr:    "invalid",
			wantErr: true,
		},
		{
			name:    "empty string",
			addr:    "",
			wantErr: true,
		},
		{
			name:    "invalid format with dots",
			addr:    "192.168.1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateListenAddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validateListenPort(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		wantErr bool
	}{
		{
			name:    "valid port number",
			port:    "9877",
			wantErr: false,
		},
		{
			name:    "valid minimum port",
			port:    "1",
			wantErr: false,
		},
		{
			name:    "valid maximum port",
			port:    "65535",
			wantErr: false,
		},
		{
			name:    "invalid port - too big",
			port:    "65536",
			wantErr: true,
		},
		{
			name:    "invalid port - zero",
			port:    "0",
			wantErr: true,
		},
		{
			name:    "invalid port - letters",
			port:    "abc",
			wantErr: true,
		},
		{
			name:    "invalid port - empty",
			port:    "",
			wantErr: true,
		},
		{
			name:    "invalid port - decimal",
			port:    "8080.1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateListenPort(tt.port)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validateAuthTokenAlgorithm(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{
			name:      "valid - plaintext",
			algorithm: "plaintext",
			wantErr:   false,
		},
		{
			name:      "valid - argon2",
			algorithm: "argon2",
			wantErr:   false,
		},
		{
			name:      "valid - bcrypt",
			algorithm: "bcrypt",
			wantErr:   false,
		},
		{
			name:      "invalid - empty string",
			algorithm: "",
			wantErr:   true,
		},
		{
			name:      "invalid - unknown algorithm",
			algorithm: "md5",
			wantErr:   true,
		},
		{
			name:      "invalid - case sensitive",
			algorithm: "PLAINTEXT",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAuthTokenAlgorithm(tt.algorithm)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "valid values are")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validate(t *testing.T) {
	valid := Config{
		DBPath:             "data.db",
		Driver:             "sqlite3",
		BusyTimeout:        5 * time.Second,
		Transport:          "stdio",
		ListenAddr:         "127.0.0.1",
		ListenPort:         "9877",
		AuthTokenAlgorithm: "plaintext",
		LogLevel:           "info",
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid stdio",
			modify: func(c *Config) {},
		},
		{
			name:   "valid http with modernc driver",
			modify: func(c *Config) { c.Transport = "http"; c.Driver = "sqlite" },
		},
		{
			name:    "missing path",
			modify:  func(c *Config) { c.DBPath = "  " },
			wantErr: "database path is required",
		},
		{
			name:    "unknown driver",
			modify:  func(c *Config) { c.Driver = "pgx" },
			wantErr: "invalid driver",
		},
		{
			name:    "zero busy timeout",
			modify:  func(c *Config) { c.BusyTimeout = 0 },
			wantErr: "invalid busy timeout",
		},
		{
			name:    "unknown transport",
			modify:  func(c *Config) { c.Transport = "sse" },
			wantErr: "invalid transport",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: "invalid log level",
		},
		{
			name:   "listen settings ignored for stdio",
			modify: func(c *Config) { c.ListenPort = "nope" },
		},
		{
			name:    "listen settings checked for http",
			modify:  func(c *Config) { c.Transport = "http"; c.ListenPort = "nope" },
			wantErr: "invalid listen port",
		},
		{
			name:    "auth algorithm checked for http",
			modify:  func(c *Config) { c.Transport = "http"; c.AuthTokenAlgorithm = "sha1" },
			wantErr: "invalid auth algorithm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)

			err := validate(cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
