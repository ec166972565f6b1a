package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RemoveLines deletes the given lines from the file at path without a
// temporary copy: a second handle writes surviving lines back over
// the same file while the buffered reader stays ahead, and the file
// is truncated to what was written. Indices are 0-based and must be
// strictly ascending. Surviving lines keep their own terminators.
func RemoveLines(path string, lines []int) error {
	for i, n := range lines {
		if n < 0 {
			return fmt.Errorf("negative line index %d", n)
		}
		if i > 0 && n <= lines[i-1] {
			return fmt.Errorf("line indices must be strictly ascending, got %d after %d", n, lines[i-1])
		}
	}

	rf, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rf.Close()

	wf, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer wf.Close()

	reader := bufio.NewReader(rf)
	writer := bufio.NewWriter(wf)
	var written int64
	next := 0
	total := 0

	for i := 0; ; i++ {
		line, err := reader.ReadString('\n')
		if line != "" {
			total++
			if next < len(lines) && lines[next] == i {
				next++
			} else {
				n, werr := writer.WriteString(line)
				if werr != nil {
					return fmt.Errorf("failed to write %s: %w", path, werr)
				}
				written += int64(n)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if next < len(lines) {
		return fmt.Errorf("line %d out of range: %s has %d lines", lines[next], path, total)
	}
	if err := wf.Truncate(written); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", path, err)
	}
	return wf.Close()
}

// DuplicateLines reports the 0-based line numbers whose (word, code)
// entry already appeared earlier in the stream, in the ascending
// order RemoveLines wants. Comments and blank lines are never
// reported.
func DuplicateLines(r io.Reader) ([]int, error) {
	seen := make(map[Entry]bool)
	var dups []int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for i := 0; scanner.Scan(); i++ {
		entry, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if seen[entry] {
			dups = append(dups, i)
			continue
		}
		seen[entry] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan for duplicates: %w", err)
	}
	return dups, nil
}
