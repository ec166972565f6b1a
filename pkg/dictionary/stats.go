package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TableStats aggregates the byte weight of one dictionary table: how
// much of the file is words, how much is codes.
type TableStats struct {
	Name     string
	FileSize int64
	WordLen  int
	CodeLen  int
}

// Sum is the combined word and code byte count.
func (s TableStats) Sum() int { return s.WordLen + s.CodeLen }

// WordRatio is the fraction of the file taken up by words.
func (s TableStats) WordRatio() float64 { return s.ratio(s.WordLen) }

// CodeRatio is the fraction of the file taken up by codes.
func (s TableStats) CodeRatio() float64 { return s.ratio(s.CodeLen) }

// SumRatio is the fraction of the file that is payload rather than
// header, comments, and separators.
func (s TableStats) SumRatio() float64 { return s.ratio(s.Sum()) }

func (s TableStats) ratio(n int) float64 {
	if s.FileSize == 0 {
		return 0
	}
	return float64(n) / float64(s.FileSize)
}

// Collect sums word and code bytes over every tab-carrying line of
// the table at path. Unlike the trie loader it does not strip
// comments; the point is measuring the raw file.
func Collect(path string) (TableStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return TableStats{}, fmt.Errorf("failed to open table: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return TableStats{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	stats := TableStats{
		Name:     strings.TrimSuffix(filepath.Base(path), "."+DictExt),
		FileSize: info.Size(),
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			continue
		}
		stats.WordLen += tab
		stats.CodeLen += len(line) - tab - 1
	}
	if err := scanner.Err(); err != nil {
		return TableStats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return stats, nil
}

// WriteCSV renders the statistics table, heaviest payload fraction
// first. Percentages carry two decimals and no unit.
func WriteCSV(w io.Writer, stats []TableStats) error {
	sorted := make([]TableStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SumRatio() > sorted[j].SumRatio()
	})

	if _, err := fmt.Fprintln(w, "name,word len,code len,sum,word per,code per,sum per"); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, s := range sorted {
		_, err := fmt.Fprintf(w, "%s,%d,%d,%d,%.2f,%.2f,%.2f\n",
			s.Name, s.WordLen, s.CodeLen, s.Sum(),
			s.WordRatio()*100, s.CodeRatio()*100, s.SumRatio()*100)
		if err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	return nil
}
