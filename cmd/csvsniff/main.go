// Command csvsniff infers a SQL-ish schema from a CSV file in one pass
// and prints it as JSON.
//
// Usage:
//
//	csvsniff [-max-line-bytes N] [-max-cols N] file.csv
//
// Exit status: 0 on success (including empty inputs), 1 when the file
// cannot be opened or read, 2 on usage errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ejo6/DataWarehouse/internal/scan"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvsniff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxLineBytes := fs.Int("max-line-bytes", scan.DefaultMaxLineBytes, "longest physical line kept before truncation")
	maxCols := fs.Int("max-cols", scan.DefaultMaxColumns, "hard cap on fields per record")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: csvsniff [flags] file.csv\n")
		fs.PrintDefaults()
		return 2
	}

	s, err := scan.SniffFile(context.Background(), fs.Arg(0), scan.Options{
		MaxLineBytes: *maxLineBytes,
		MaxColumns:   *maxCols,
	})
	if err != nil {
		fmt.Fprintf(stderr, "csvsniff: %v\n", err)
		return 1
	}

	out, err := json.Marshal(s)
	if err != nil {
		fmt.Fprintf(stderr, "csvsniff: encode: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return 0
}
