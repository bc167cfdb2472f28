// sqlaccess reads rows from a table through the sqlaccess facade and prints
// them tab-separated.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/spf13/pflag"

	"github.com/nlimpid/sqlaccess"
	"github.com/nlimpid/sqlaccess/internal/logger"
	"github.com/nlimpid/sqlaccess/scanner"
)

var command struct {
	driver     string
	dsn        string
	setup      string
	table      string
	columns    []string
	key        string
	value      string
	where      []string
	combinator string
	join       string
	order      []string
}

func main() {
	log.SetFlags(0)
	pflag.StringVar(&command.driver, "driver", "duckdb", "database/sql driver name (duckdb or pgx)")
	pflag.StringVar(&command.dsn, "dsn", os.Getenv("SQLACCESS_DSN"), "data source name ($SQLACCESS_DSN)")
	pflag.StringVar(&command.setup, "setup", "", "SQL script to execute before reading")
	pflag.StringVarP(&command.table, "table", "t", "", "table to read")
	pflag.StringSliceVarP(&command.columns, "columns", "c", nil, "columns to read, comma separated")
	pflag.StringVar(&command.key, "key", "", "key column")
	pflag.StringVar(&command.value, "value", "", "key value")
	pflag.StringArrayVarP(&command.where, "where", "w", nil, "condition col=value, repeatable")
	pflag.StringVar(&command.combinator, "combinator", "and", "combinator for --where: and, or")
	pflag.StringVar(&command.join, "join", "", "join kind:left_key:other_table:right_key")
	pflag.StringArrayVarP(&command.order, "order", "o", nil, "sort column[:asc|desc], repeatable")
	pflag.Parse()
	if len(pflag.Args()) > 0 {
		log.Fatalln("unrecognized args:", strings.Join(pflag.Args(), " "))
	}
	if command.table == "" {
		log.Fatal("no table specified (--table)")
	}

	slogger := logger.NewLogger(logger.LoadConfig())

	db, err := sql.Open(command.driver, command.dsn)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	ctx := context.Background()
	if command.setup != "" {
		script, err := os.ReadFile(command.setup)
		if err != nil {
			log.Fatalln(err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			log.Fatalln("cannot run setup script:", err)
		}
	}

	req, err := newRequest(command.table, command.columns, command.key, command.value,
		command.where, command.combinator, command.join, command.order)
	if err != nil {
		log.Fatalln(err)
	}

	access := sqlaccess.New(db, sqlaccess.WithDriver(command.driver), sqlaccess.WithLogger(slogger))
	rows, err := req.run(ctx, access)
	if err != nil {
		log.Fatalln(err)
	}
	if err := printRows(os.Stdout, rows); err != nil {
		log.Fatalln(err)
	}
}

func printRows(w io.Writer, rows []scanner.Row) error {
	for _, row := range rows {
		cells := make([]string, len(row))
		for i := range row {
			if row.IsNull(i) {
				cells[i] = "NULL"
			} else {
				cells[i] = row.String(i)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}
