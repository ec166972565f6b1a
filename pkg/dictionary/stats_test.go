package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"name: jd.danzi",
		"你好\tnau",
		"好\thzz ",
		"plain line",
		"",
	}, "\n")
	path := filepath.Join(dir, "jd.danzi.dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	stats, err := Collect(path)
	require.NoError(t, err)
	assert.Equal(t, "jd.danzi", stats.Name)
	assert.Equal(t, int64(len(content)), stats.FileSize)
	// 你好 (6) + 好 (3) bytes of words, "nau" (3) + "hzz " (4) of codes
	assert.Equal(t, 9, stats.WordLen)
	assert.Equal(t, 7, stats.CodeLen)
	assert.Equal(t, 16, stats.Sum())
}

func TestCollectCountsCommentLinesWithTabs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# x\ty\n"), 0644))

	stats, err := Collect(path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.WordLen)
	assert.Equal(t, 1, stats.CodeLen)
}

func TestRatiosOfEmptyFile(t *testing.T) {
	stats := TableStats{Name: "empty"}
	assert.Zero(t, stats.WordRatio())
	assert.Zero(t, stats.CodeRatio())
	assert.Zero(t, stats.SumRatio())
}

func TestWriteCSV(t *testing.T) {
	stats := []TableStats{
		{Name: "jd.danzi", FileSize: 100, WordLen: 30, CodeLen: 20},
		{Name: "jd.cizu", FileSize: 100, WordLen: 40, CodeLen: 40},
	}

	var out strings.Builder
	require.NoError(t, WriteCSV(&out, stats))

	want := "name,word len,code len,sum,word per,code per,sum per\n" +
		"jd.cizu,40,40,80,40.00,40.00,80.00\n" +
		"jd.danzi,30,20,50,30.00,20.00,50.00\n"
	assert.Equal(t, want, out.String())
}

func TestWriteCSVLeavesInputAlone(t *testing.T) {
	stats := []TableStats{
		{Name: "a", FileSize: 10, WordLen: 1, CodeLen: 1},
		{Name: "b", FileSize: 10, WordLen: 4, CodeLen: 4},
	}

	var out strings.Builder
	require.NoError(t, WriteCSV(&out, stats))
	assert.Equal(t, "a", stats[0].Name)
}
