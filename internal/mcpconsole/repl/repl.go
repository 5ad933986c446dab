package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/styled"
	"github.com/nsqlite/nsqlite-mcp/internal/stats"
	"github.com/nsqlite/nsqlite-mcp/internal/util/sysutil"
	"github.com/peterh/liner"
)

type Repl struct {
	ctx         context.Context
	stop        context.CancelFunc
	gateway     *gateway.Gateway
	stats       *stats.ToolStats
	out         io.Writer
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	gw *gateway.Gateway,
	st *stats.ToolStats,
) *Repl {
	return &Repl{
		ctx:         ctx,
		stop:        stop,
		gateway:     gw,
		stats:       st,
		out:         os.Stdout,
		historyPath: filepath.Join(os.TempDir(), ".nsqlite_mcp_history"),
	}
}

func (r *Repl) Start() error {
	if err := r.gateway.Ping(r.ctx); err != nil {
		return fmt.Errorf("failed to open %s: %w", r.gateway.DBPath, err)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Connected to %s using the %s driver\n", r.gateway.DBPath, r.gateway.Driver.Value)
	fmt.Fprintln(r.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.out)

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			if quit := r.execute(r.prompt()); quit {
				r.Shutdown()
				return nil
			}
		}
	}
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

// execute runs one line of input and reports whether the REPL should quit.
func (r *Repl) execute(input string) bool {
	input = strings.TrimSpace(input)

	switch {
	case input == "":
		return false
	case input == "exit" || input == ".exit" || input == ".quit":
		return true
	case input == "clear" || input == ".clear":
		sysutil.ClearTerminal(r.out)
	case input == "help" || input == ".help":
		cmdHelp(r)
	case strings.HasPrefix(input, "."):
		r.dotCommand(input)
	default:
		cmdQuery(r, input)
	}
	return false
}

func (r *Repl) dotCommand(input string) {
	cmd, table, rest := splitCommand(input)

	switch cmd {
	case ".info":
		cmdInfo(r)
	case ".tables":
		cmdTables(r)
	case ".schema":
		cmdSchema(r, table)
	case ".read":
		cmdRead(r, table, rest)
	case ".insert":
		cmdInsert(r, table, rest)
	case ".update":
		cmdUpdate(r, table, rest)
	case ".delete":
		cmdDelete(r, table, rest)
	case ".stats":
		cmdStats(r, table)
	default:
		fmt.Fprintln(r.out, "Unknown command, type .help for usage hints")
	}
}

// Counters for successful gateway calls.
var (
	countRead  = (*stats.ToolStats).IncReads
	countWrite = (*stats.ToolStats).IncWrites
	countQuery = (*stats.ToolStats).IncQueries
)

// record counts the outcome of one gateway call.
func (r *Repl) record(err error, count func(*stats.ToolStats)) {
	if r.stats == nil {
		return
	}
	if err != nil {
		r.stats.IncFailures()
		return
	}
	count(r.stats)
}

// printError shows err with the kind and message of a failure envelope.
func (r *Repl) printError(err error) {
	message := err.Error()
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		message = gerr.Message()
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Error", "Kind"})
	tw.AppendRow(table.Row{message, gateway.KindOf(err).Value})
	fmt.Fprintln(r.out, tw.Render())
	styled.ErrorColor().Fprintln(r.out, "Operation failed")
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt("SQLite> ")
	if err != nil {
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(r.out, "Exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}
