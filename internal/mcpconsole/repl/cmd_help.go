package repl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/styled"
)

type dotCmd struct {
	name         string
	autocomplete string
	help         string
	args         string
}

func cmdHelpCommands() []dotCmd {
	cmds := []dotCmd{
		{name: ".schema [table]", autocomplete: ".schema ", help: "Show the columns of a table", args: "table (required)"},
		{name: ".read [table] [conditions] [limit] [offset]", autocomplete: ".read ", help: "Read the records of a table", args: `table (required), conditions (optional, e.g. {"id": 1}), limit and offset (optional)`},
		{name: ".insert [table] [data]", autocomplete: ".insert ", help: "Insert a record into a table", args: `table and data (required, e.g. {"name": "Ada"})`},
		{name: ".update [table] [data] [conditions]", autocomplete: ".update ", help: "Update the records matching the conditions", args: "table, data and conditions (required)"},
		{name: ".delete [table] [conditions]", autocomplete: ".delete ", help: "Delete the records matching the conditions", args: "table and conditions (required)"},
		{name: ".stats [minutes]", autocomplete: ".stats", help: "Shows the call stats of last specified minutes", args: "minutes (optional, default 5)"},

		{name: ".info", autocomplete: ".info", help: "Show the database file metadata"},
		{name: ".tables", autocomplete: ".tables", help: "List all tables in the database"},
		{name: ".clear", autocomplete: ".clear", help: "Clear the terminal screen"},
		{name: ".help", autocomplete: ".help", help: "Show the help message"},
		{name: ".quit", autocomplete: ".quit", help: "Exit the application"},
		{name: ".exit", autocomplete: ".exit", help: "Exit the application"},
		{name: "CTRL+c", help: "Exit the application"},
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].name < cmds[j].name
	})

	return cmds
}

func cmdHelp(r *Repl) {
	fmt.Fprintln(r.out, "Available commands:")

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Command", "Description", "Arguments"})
	for _, cmd := range cmdHelpCommands() {
		tw.AppendRow(table.Row{cmd.name, cmd.help, cmd.args})
	}

	fmt.Fprintln(r.out, tw.Render())
	fmt.Fprintln(r.out, "Any other input is run as SQL and its rows are shown.")
}

func cmdHelpCompleter(line string) []string {
	suggestions := []string{
		"SELECT ",
		"SELECT * FROM ",
		"SELECT COUNT(*) FROM ",
		"INSERT INTO ",
		"UPDATE ",
		"DELETE FROM ",
		"CREATE TABLE ",
		"DROP TABLE ",
		"ALTER TABLE ",
	}

	for _, cmd := range cmdHelpCommands() {
		if cmd.autocomplete != "" {
			suggestions = append(suggestions, cmd.autocomplete)
		}
	}

	results := []string{}
	for _, suggestion := range suggestions {
		if strings.HasPrefix(strings.ToLower(suggestion), strings.ToLower(line)) {
			results = append(results, suggestion)
		}
	}

	return results
}
