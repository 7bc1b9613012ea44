// Command ralite is a minimal front end over the query engine: it seeds a
// small in-process table, runs one SQL statement against it, and prints the
// result. There is no network server here -- the engine answers queries
// against in-process data sources, not over the wire.
//
// > ralite -sql "SELECT name FROM mytable WHERE id > 1" -table
package main

import (
	"flag"
	"fmt"
	"os"

	sqle "github.com/ralite/ralite"
	"github.com/ralite/ralite/memory"
	"github.com/ralite/ralite/sql"
)

var tableName = "mytable"

func main() {
	sqlText := flag.String("sql", "SELECT * FROM mytable", "SQL query to run")
	optLevel := flag.Int("optimize", 1, "rewriter optimization level (0 disables rewriting)")
	emitCSV := flag.Bool("csv", false, "render the result as CSV")
	emitTable := flag.Bool("table", true, "render the result as a Markdown table")
	dumpRA := flag.Bool("dump-ra", false, "log the parsed and rewritten relational-algebra tree")
	flag.Parse()

	ctx := sql.NewEmptyContext()
	catalog := sql.NewCatalog(nil)
	catalog.Register(seedTable())

	engine := sqle.NewEngine(catalog)
	_, res, err := engine.ExecuteAndRender(ctx, *sqlText, sqle.Options{
		OptimizationLevel: *optLevel,
		EmitCSV:           *emitCSV,
		EmitTable:         *emitTable,
		DumpRA:            *dumpRA,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *emitTable {
		fmt.Print(res.Table)
	}
	if *emitCSV {
		fmt.Print(res.CSV)
	}
}

func seedTable() *memory.Table {
	table := memory.NewTable(tableName, sql.Schema{
		{Name: "id", Source: tableName, Type: sql.TypeInt64},
		{Name: "name", Source: tableName, Type: sql.TypeText},
		{Name: "email", Source: tableName, Type: sql.TypeText},
	}, nil)

	table.Insert(sql.NewRow(int64(1), "Jane Doe", "jane@doe.com"))
	table.Insert(sql.NewRow(int64(2), "John Doe", "john@doe.com"))
	table.Insert(sql.NewRow(int64(3), "John Doe", "johnalt@doe.com"))

	return table
}
