package repl

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/nsqlite-mcp/internal/gateway"
	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole/styled"
	"github.com/nsqlite/nsqlite-mcp/internal/util/numutil"
)

func invalidArgument(op gateway.Operation, err error) error {
	return &gateway.Error{Op: op, Kind: gateway.KindInvalidArgument, Err: err}
}

func cmdQuery(r *Repl, input string) {
	records, err := r.gateway.RunSelect(r.ctx, input, nil)
	r.record(err, countQuery)
	if err != nil {
		r.printError(err)
		return
	}
	r.printRecords(records)
}

func cmdInfo(r *Repl) {
	info, err := r.gateway.DescribeDatabase(r.ctx)
	r.record(err, countRead)
	if err != nil {
		r.printError(err)
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Property", "Value"})
	tw.AppendRows([]table.Row{
		{"Path", info.DBPath},
		{"Exists", info.Exists},
		{"Size (bytes)", numutil.IntWithCommas(info.Size)},
		{"Last Modified", styled.Cell(info.LastModified)},
		{"Tables", info.TableCount},
	})
	fmt.Fprintln(r.out, tw.Render())
}

func cmdTables(r *Repl) {
	tables, err := r.gateway.ListTables(r.ctx)
	r.record(err, countRead)
	if err != nil {
		r.printError(err)
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Name"})
	for _, t := range tables {
		tw.AppendRow(table.Row{t.Name})
	}
	fmt.Fprintln(r.out, tw.Render())
}

func cmdSchema(r *Repl, tableName string) {
	columns, err := r.gateway.DescribeTable(r.ctx, tableName)
	r.record(err, countRead)
	if err != nil {
		r.printError(err)
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"cid", "name", "type", "notnull", "dflt_value", "pk"})
	for _, c := range columns {
		tw.AppendRow(table.Row{c.Cid, c.Name, c.Type, c.NotNull, styled.Cell(c.DefaultValue), c.PrimaryKey})
	}
	fmt.Fprintln(r.out, tw.Render())
}

func cmdRead(r *Repl, tableName string, rest string) {
	opts, err := parseReadOptions(rest)
	if err != nil {
		err = invalidArgument(gateway.OpReadRecords, err)
		r.record(err, countRead)
		r.printError(err)
		return
	}

	records, err := r.gateway.ReadRecords(r.ctx, tableName, opts)
	r.record(err, countRead)
	if err != nil {
		r.printError(err)
		return
	}
	r.printRecords(records)
}

func cmdInsert(r *Repl, tableName string, rest string) {
	fields, err := parseFields(rest, "data")
	if err != nil {
		err = invalidArgument(gateway.OpInsertRecord, err)
		r.record(err, countWrite)
		r.printError(err)
		return
	}

	summary, err := r.gateway.InsertRecord(r.ctx, tableName, fields[0])
	r.printWrite(summary, err)
}

func cmdUpdate(r *Repl, tableName string, rest string) {
	fields, err := parseFields(rest, "data", "conditions")
	if err != nil {
		err = invalidArgument(gateway.OpUpdateRecords, err)
		r.record(err, countWrite)
		r.printError(err)
		return
	}

	summary, err := r.gateway.UpdateRecords(r.ctx, tableName, fields[0], fields[1])
	r.printWrite(summary, err)
}

func cmdDelete(r *Repl, tableName string, rest string) {
	fields, err := parseFields(rest, "conditions")
	if err != nil {
		err = invalidArgument(gateway.OpDeleteRecords, err)
		r.record(err, countWrite)
		r.printError(err)
		return
	}

	summary, err := r.gateway.DeleteRecords(r.ctx, tableName, fields[0])
	r.printWrite(summary, err)
}

func (r *Repl) printWrite(summary gateway.WriteSummary, err error) {
	r.record(err, countWrite)
	if err != nil {
		r.printError(err)
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID", "Total Changes"})
	tw.AppendRow(table.Row{"OK", summary.RowsAffected, summary.LastInsertID, summary.TotalChangesCount})
	fmt.Fprintln(r.out, tw.Render())
}

// printRecords renders records with their columns in name order.
func (r *Repl) printRecords(records []gateway.Record) {
	if len(records) == 0 {
		styled.DimmedColor().Fprintln(r.out, "No rows")
		return
	}

	seen := map[string]struct{}{}
	columns := []string{}
	for _, rec := range records {
		for col := range rec {
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)

	header := table.Row{}
	for _, col := range columns {
		header = append(header, col)
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(header)
	for _, rec := range records {
		row := table.Row{}
		for _, col := range columns {
			row = append(row, styled.Cell(rec[col]))
		}
		tw.AppendRow(row)
	}
	fmt.Fprintln(r.out, tw.Render())
	styled.DimmedColor().Fprintf(r.out, "%s rows\n", numutil.IntWithCommas(len(records)))
}
