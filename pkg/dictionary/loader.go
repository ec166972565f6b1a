// Package dictionary reads tab-separated code tables and provides the
// file utilities that keep them in shape: schema import resolution,
// size statistics, duplicate detection, and in-place line removal.
//
// A table line carries one entry: the word, a tab, then the code. The
// code is kept verbatim, trailing spaces included, since those are
// real selector keystrokes. Text after '#' is a comment. Rime-style
// .dict.yaml files parse as-is because their YAML header lines carry
// no tabs.
package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// DictExt is the filename suffix shared by all schema tables.
const DictExt = "dict.yaml"

const maxLineSize = 1024 * 1024

// Entry is one (word, code) pair from a table line.
type Entry struct {
	Word string
	Code string
}

// ParseLine extracts the entry from a single table line. ok is false
// for comments, blank lines, and lines without a tab.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSuffix(line, "\r")
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	if strings.TrimSpace(line) == "" {
		return Entry{}, false
	}
	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return Entry{}, false
	}
	return Entry{Word: line[:tab], Code: line[tab+1:]}, true
}

// ReadTable parses every entry from r, preserving line order.
func ReadTable(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if entry, ok := ParseLine(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return entries, nil
}

// LoadFile reads all entries from one table file.
func LoadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	entries, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	log.Debugf("Loaded %d entries from %s", len(entries), filepath.Base(path))
	return entries, nil
}

// importPattern matches one sub-table reference, e.g. "xkjd6.cizu"
// for schema "xkjd6".
func importPattern(schema string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(schema) + `\.[-_\w]+`)
}

// ScanImports lists the sub-tables referenced by the import_tables
// block of a schema's main table. Blank and comment lines never end
// the block; the first remaining line without a reference does.
func ScanImports(r io.Reader, schema string) ([]string, error) {
	re := importPattern(schema)
	var refs []string
	inBlock := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !inBlock {
			if strings.HasPrefix(line, "import_tables") {
				inBlock = true
			}
			continue
		}
		ref := re.FindString(line)
		if ref == "" {
			break
		}
		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan imports: %w", err)
	}
	return refs, nil
}

// LoadSchema reads a schema's main table followed by every sub-table
// its import_tables block references, resolved against the main
// table's directory.
func LoadSchema(mainPath, schema string) ([]Entry, error) {
	raw, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema table: %w", err)
	}
	refs, err := ScanImports(bytes.NewReader(raw), schema)
	if err != nil {
		return nil, err
	}
	entries, err := ReadTable(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", mainPath, err)
	}

	dir := filepath.Dir(mainPath)
	for _, ref := range refs {
		sub, err := LoadFile(filepath.Join(dir, ref+"."+DictExt))
		if err != nil {
			return nil, err
		}
		entries = append(entries, sub...)
	}
	log.Debugf("Loaded schema %s: %d tables, %d entries", schema, len(refs)+1, len(entries))
	return entries, nil
}
