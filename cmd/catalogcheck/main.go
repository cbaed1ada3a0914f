// Command catalogcheck lints message catalogs and name-day calendars before
// they are deployed to the catalog override directory. It checks the merged
// view the service would load: files in -dir first, built-in files for
// anything the directory does not override.
//
// Usage:
//
//	go run ./cmd/catalogcheck -dir /etc/daily-brief/catalogs
//	go run ./cmd/catalogcheck            # built-in catalogs only
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/daily-brief-service/internal/catalog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("catalogcheck", flag.ContinueOnError)
	fset.SetOutput(stderr)
	dir := fset.String("dir", "", "catalog override directory (<dir>/<lang>/weather_messages.txt)")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := catalog.Open(*dir, logger)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	issues, err := catalog.Lint(store.FS())
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: read catalogs: %v\n", err)
		return 1
	}

	for _, issue := range issues {
		fmt.Fprintln(stdout, issue)
	}
	if len(issues) > 0 {
		fmt.Fprintf(stdout, "\n%d issue(s) found\n", len(issues))
		return 1
	}
	fmt.Fprintln(stdout, "catalogs OK")
	return 0
}
