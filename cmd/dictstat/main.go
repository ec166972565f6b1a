package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kagura-dev/typeway/pkg/dictionary"
)

// parseLineList turns "3,17,204" into the ascending index list that
// dictionary.RemoveLines expects.
func parseLineList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	lines := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad line number %q: %w", part, err)
		}
		lines = append(lines, n)
	}
	return lines, nil
}

func main() {
	root := flag.String("root", ".", "Directory containing the schema tables")
	schema := flag.String("schema", "xkjd6", "Schema name; the main table is <schema>.dict.yaml")
	out := flag.String("o", "data.csv", "Output path for the stats CSV")
	file := flag.String("file", "", "Operate on a single table instead of the whole schema")
	prune := flag.String("prune", "", "Comma-separated 0-based line numbers to remove (needs -file)")
	dedupe := flag.Bool("dedupe", false, "Remove duplicate entries in place (needs -file)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	log.SetReportTimestamp(false)

	if *prune != "" || *dedupe {
		if *file == "" {
			log.Fatal("-prune and -dedupe operate on a single table, pass -file")
			os.Exit(1)
		}
		if *prune != "" {
			lines, err := parseLineList(*prune)
			if err != nil {
				log.Fatalf("Bad -prune list: %v", err)
				os.Exit(1)
			}
			if err := dictionary.RemoveLines(*file, lines); err != nil {
				log.Fatalf("Failed to prune %s: %v", *file, err)
				os.Exit(1)
			}
			log.Infof("Removed %d lines from %s", len(lines), *file)
		}
		if *dedupe {
			f, err := os.Open(*file)
			if err != nil {
				log.Fatalf("Failed to open %s: %v", *file, err)
				os.Exit(1)
			}
			dups, err := dictionary.DuplicateLines(f)
			f.Close()
			if err != nil {
				log.Fatalf("Failed to scan %s: %v", *file, err)
				os.Exit(1)
			}
			if len(dups) == 0 {
				log.Infof("No duplicate entries in %s", *file)
				return
			}
			if err := dictionary.RemoveLines(*file, dups); err != nil {
				log.Fatalf("Failed to dedupe %s: %v", *file, err)
				os.Exit(1)
			}
			log.Infof("Removed %d duplicate entries from %s", len(dups), *file)
		}
		return
	}

	var tables []string
	if *file != "" {
		tables = []string{*file}
	} else {
		mainTable := filepath.Join(*root, *schema+"."+dictionary.DictExt)
		f, err := os.Open(mainTable)
		if err != nil {
			log.Fatalf("Failed to open main table: %v", err)
			os.Exit(1)
		}
		refs, err := dictionary.ScanImports(f, *schema)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to scan imports: %v", err)
			os.Exit(1)
		}
		log.Debugf("Schema %s imports %d sub-tables", *schema, len(refs))

		tables = append(tables, mainTable)
		for _, ref := range refs {
			tables = append(tables, filepath.Join(*root, ref+"."+dictionary.DictExt))
		}
	}

	stats := make([]dictionary.TableStats, 0, len(tables))
	for _, table := range tables {
		s, err := dictionary.Collect(table)
		if err != nil {
			log.Fatalf("Failed to measure %s: %v", table, err)
			os.Exit(1)
		}
		log.Debugf("%s: %d word bytes, %d code bytes", s.Name, s.WordLen, s.CodeLen)
		stats = append(stats, s)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
		os.Exit(1)
	}
	if err := dictionary.WriteCSV(outFile, stats); err != nil {
		outFile.Close()
		log.Fatalf("Failed to write %s: %v", *out, err)
		os.Exit(1)
	}
	if err := outFile.Close(); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
		os.Exit(1)
	}
	log.Infof("Wrote stats for %d tables to %s", len(stats), *out)
}
