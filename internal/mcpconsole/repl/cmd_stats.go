package repl

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/styled"
	"github.com/nsqlite/nsqlite-mcp/internal/util/numutil"
)

const defaultStatsMinutes = 5

func cmdStats(r *Repl, minutesArg string) {
	if r.stats == nil {
		fmt.Fprintln(r.out, "Stats are not enabled")
		return
	}

	statsQty := defaultStatsMinutes
	if minutesArg != "" {
		n, err := strconv.Atoi(minutesArg)
		if err != nil || n <= 0 {
			fmt.Fprintln(r.out, "Invalid number of minutes, expected a positive integer")
			return
		}
		statsQty = n
	}

	loaded := r.stats.LoadStats()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Minute (UTC)", "Calls", "Reads", "Writes", "Queries", "Failures"})

	rows := []table.Row{}
	for i, stat := range loaded.Stats {
		if i >= statsQty {
			break
		}

		minute, err := time.Parse(time.RFC3339, stat.Minute)
		if err != nil {
			continue
		}

		rows = append(rows, table.Row{
			minute.Format("2006-01-02 15:04"),
			numutil.IntWithCommas(stat.Calls),
			numutil.IntWithCommas(stat.Reads),
			numutil.IntWithCommas(stat.Writes),
			numutil.IntWithCommas(stat.Queries),
			numutil.IntWithCommas(stat.Failures),
		})
	}
	slices.Reverse(rows)
	tw.AppendRows(rows)

	tw.AppendFooter(table.Row{
		"Total",
		numutil.IntWithCommas(loaded.Totals.Calls),
		numutil.IntWithCommas(loaded.Totals.Reads),
		numutil.IntWithCommas(loaded.Totals.Writes),
		numutil.IntWithCommas(loaded.Totals.Queries),
		numutil.IntWithCommas(loaded.Totals.Failures),
	})

	fmt.Fprintln(r.out, tw.Render())
	styled.DimmedColor().Fprintf(r.out, "Showing the last %d minutes of stats\n", statsQty)
	styled.DimmedColor().Fprintf(r.out, "Uptime: %s\n", loaded.Uptime)
	if loaded.LastCallAt != "" {
		styled.DimmedColor().Fprintf(r.out, "Last call: %s\n", loaded.LastCallAt)
	}
	fmt.Fprintln(r.out)
}
