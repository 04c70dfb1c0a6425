// Package main generates the markdown reference for the leapquery CLI and
// its built-in dialects from the command tree and the dialect registry.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=dialects -outdir=docs/reference
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	// Built-in dialects, so the reference lists them.
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/snowflake"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/sqlite"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, dialects, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := run(*genFlag, *outDirFlag, projectRoot); err != nil {
		log.Fatal(err)
	}
	log.Println("Done!")
}

// run generates the pages selected by gen. An empty outDir picks the
// default directory under projectRoot; with gen=all it is ignored.
func run(gen, outDir, projectRoot string) error {
	dir := func(def ...string) string {
		if outDir != "" && gen != "all" {
			return outDir
		}
		return filepath.Join(append([]string{projectRoot}, def...)...)
	}

	switch gen {
	case "cli":
		return generateCLIDocs(dir("docs", "cli"))
	case "dialects":
		return generateDialectDocs(dir("docs", "reference"))
	case "all":
		if err := generateCLIDocs(dir("docs", "cli")); err != nil {
			return err
		}
		return generateDialectDocs(dir("docs", "reference"))
	default:
		return fmt.Errorf("unknown -gen value: %s (use: cli, dialects, all)", gen)
	}
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
