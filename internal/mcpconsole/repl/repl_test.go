package repl

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl(t *testing.T) (*Repl, *bytes.Buffer) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "console.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, avatar BLOB)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	gw, err := gateway.New(gateway.Config{
		Logger:         log.NewLogger(io.Discard),
		DBPath:         dbPath,
		KeepConnection: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	st := stats.NewToolStats()
	t.Cleanup(st.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	out := &bytes.Buffer{}
	r := NewRepl(ctx, cancel, gw, st)
	r.out = out
	return r, out
}

// run executes input and returns what it printed.
func run(r *Repl, out *bytes.Buffer, input string) string {
	out.Reset()
	r.execute(input)
	return out.String()
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input string
		cmd   string
		first string
		rest  string
	}{
		{".tables", ".tables", "", ""},
		{".SCHEMA users", ".schema", "users", ""},
		{`.read users {"id": 1} 5`, ".read", "users", `{"id": 1} 5`},
		{`  .update   users  {"a": 1} {"b": 2} `, ".update", "users", `{"a": 1} {"b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, first, rest := splitCommand(tt.input)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseReadOptions(t *testing.T) {
	opts, err := parseReadOptions(`{"name": "Ada", "id": 1} 5 10`)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, opts.Conditions.Columns())
	require.NotNil(t, opts.Limit)
	require.NotNil(t, opts.Offset)
	assert.Equal(t, int64(5), *opts.Limit)
	assert.Equal(t, int64(10), *opts.Offset)

	opts, err = parseReadOptions(`3`)
	require.NoError(t, err)
	assert.Nil(t, opts.Conditions)
	assert.Equal(t, int64(3), *opts.Limit)
	assert.Nil(t, opts.Offset)

	opts, err = parseReadOptions(``)
	require.NoError(t, err)
	assert.Equal(t, gateway.ReadOptions{}, opts)

	_, err = parseReadOptions(`"five"`)
	assert.ErrorContains(t, err, "limit must be an integer")

	_, err = parseReadOptions(`1 2 3`)
	assert.ErrorContains(t, err, "too many arguments")

	_, err = parseReadOptions(`{"id": `)
	assert.ErrorContains(t, err, "invalid arguments")
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields(`{"name": "Bob"} {"id": 1}`, "data", "conditions")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, []string{"name"}, fields[0].Columns())
	assert.Equal(t, []string{"id"}, fields[1].Columns())

	_, err = parseFields(`{"name": "Bob"}`, "data", "conditions")
	assert.ErrorContains(t, err, "expected data and conditions")

	_, err = parseFields(`[1]`, "data")
	assert.ErrorContains(t, err, "data must be a JSON object")
}

func TestExecute(t *testing.T) {
	r, out := newTestRepl(t)

	got := run(r, out, `.insert users {"name": "Ada"}`)
	assert.Contains(t, got, "OK")
	assert.Contains(t, got, "Rows Affected")

	run(r, out, `.insert users {"name": "Grace"}`)

	got = run(r, out, `.read users {"name": "Ada"}`)
	assert.Contains(t, got, "Ada")
	assert.NotContains(t, got, "Grace")
	assert.Contains(t, got, "NULL")

	got = run(r, out, `.read users 1 1`)
	assert.Contains(t, got, "Grace")
	assert.NotContains(t, got, "Ada")

	got = run(r, out, `.update users {"name": "Ada L."} {"id": 1}`)
	assert.Contains(t, got, "OK")

	got = run(r, out, "SELECT name FROM users ORDER BY id")
	assert.Contains(t, got, "Ada L.")
	assert.Contains(t, got, "2 rows")

	got = run(r, out, `.delete users {"id": 2}`)
	assert.Contains(t, got, "OK")

	got = run(r, out, "SELECT * FROM users WHERE id = 2")
	assert.Contains(t, got, "No rows")

	got = run(r, out, ".tables")
	assert.Contains(t, got, "users")

	got = run(r, out, ".schema users")
	assert.Contains(t, got, "avatar")
	assert.Contains(t, got, "BLOB")

	got = run(r, out, ".info")
	assert.Contains(t, got, "console.db")
	assert.Contains(t, got, "Last Modified")

	got = run(r, out, ".read missing")
	assert.Contains(t, got, "not_found")
	assert.Contains(t, got, "no such table: missing")

	got = run(r, out, ".read users 2.5")
	assert.Contains(t, got, "invalid_argument")

	got = run(r, out, ".delete users {}")
	assert.Contains(t, got, "invalid_argument")

	got = run(r, out, "SELEC 1")
	assert.Contains(t, got, "syntax_error")

	got = run(r, out, "-- only a comment")
	assert.Contains(t, got, "No rows")

	got = run(r, out, ".bogus")
	assert.Contains(t, got, "Unknown command")

	got = run(r, out, ".help")
	assert.Contains(t, got, ".schema [table]")

	got = run(r, out, ".stats")
	assert.Contains(t, got, "Total")
	assert.Contains(t, got, "Queries")
	assert.Contains(t, got, "Showing the last 5 minutes")

	got = run(r, out, ".stats nope")
	assert.Contains(t, got, "Invalid number of minutes")

	totals := r.stats.LoadStats().Totals
	assert.Equal(t, int64(4), totals.Failures)
	assert.Equal(t, int64(4), totals.Writes)
	assert.Equal(t, int64(3), totals.Queries)

	assert.False(t, r.execute(""))
	assert.True(t, r.execute(".quit"))
	assert.True(t, r.execute("exit"))
}

func TestCmdHelpCompleter(t *testing.T) {
	assert.Equal(t, []string{".schema "}, cmdHelpCompleter(".sc"))
	assert.Contains(t, cmdHelpCompleter("sel"), "SELECT * FROM ")
	assert.Empty(t, cmdHelpCompleter("zzz"))
}
