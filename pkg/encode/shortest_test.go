package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchap/go-patricia/v2/patricia"
)

// jdPairs is a miniature xing-ma table with overlapping prefixes, so
// inserting it exercises node splits before any encoding runs.
var jdPairs = []struct{ code, word string }{
	{"n ", "你"},
	{"h ", "好"},
	{"ms ", "吗"},
	{"nau", "你好"},
	{"hzms ", "好吗"},
}

func TestShortestPicksCheapestSegmentation(t *testing.T) {
	_, idx := build(jdPairs)

	frags, err := idx.Shortest("你好吗")
	require.NoError(t, err)
	// "nau"+"ms " beats "n "+"h "+"ms " and "n "+"hzms "
	assert.Equal(t, []string{"nau", "ms "}, frags)
}

func TestShortestEmptySentence(t *testing.T) {
	_, idx := build(jdPairs)

	frags, err := idx.Shortest("")
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestShortestSingleWord(t *testing.T) {
	_, idx := build(jdPairs)

	frags, err := idx.Shortest("你好")
	require.NoError(t, err)
	assert.Equal(t, []string{"nau"}, frags)
}

func TestShortestLeftmostWinsTies(t *testing.T) {
	_, idx := build([]struct{ code, word string }{
		{"zz", "甲"},
		{"yy", "乙"},
		{"xxxx", "甲乙"},
	})

	// "xxxx" and "zz"+"yy" both cost 4; the segmentation starting
	// earlier is kept
	frags, err := idx.Shortest("甲乙")
	require.NoError(t, err)
	assert.Equal(t, []string{"xxxx"}, frags)
}

func TestShortestInsertsSelectorSpace(t *testing.T) {
	trie, idx := build([]struct{ code, word string }{
		{"ab", "甲"},
		{"abc", "乙"},
		{"cd", "丙"},
	})

	// after committing 甲 the next code "cd" starts with the pending
	// child segment "c", so a selector space keeps 甲 from turning
	// into 乙
	frags, err := idx.Shortest("甲丙")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", " cd"}, frags)
	assert.Equal(t, "甲丙", trie.Eval(strings.Join(frags, "")))

	// typed without the space the stream collapses into 乙
	assert.NotEqual(t, "甲丙", trie.Eval("abcd"))
}

func TestShortestNoSpaceWhenNextCodeDiverges(t *testing.T) {
	trie, idx := build([]struct{ code, word string }{
		{"ab", "甲"},
		{"abc", "乙"},
		{"cd", "丙"},
	})

	// "abc" does not start with the pending segment "c", so no space
	frags, err := idx.Shortest("甲乙")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "abc"}, frags)
	assert.Equal(t, "甲乙", trie.Eval(strings.Join(frags, "")))
}

func TestShortestTrailingSelector(t *testing.T) {
	trie, idx := build([]struct{ code, word string }{
		{"ab", "甲"},
		{"abc", "乙"},
	})

	// the sentence ends on an ambiguous node, so a commit space is
	// appended as its own fragment
	frags, err := idx.Shortest("甲")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", " "}, frags)
	assert.Equal(t, "甲", trie.Eval(strings.Join(frags, "")))
}

func TestShortestUncoveredRune(t *testing.T) {
	_, idx := build([]struct{ code, word string }{
		{"qq", "a"},
		{"ww", " "},
		{"ee", "b"},
	})

	_, err := idx.Shortest("a x b")
	require.Error(t, err)

	var segErr *SegmentationError
	require.ErrorAs(t, err, &segErr)
	assert.Equal(t, 'x', segErr.Rune)
	assert.Equal(t, 2, segErr.Index)
	assert.Equal(t, "can't generate the sentence from the dictionary, see 'x' at 2", err.Error())
}

func TestShortestReportsFirstUncoveredRune(t *testing.T) {
	_, idx := build([]struct{ code, word string }{{"qq", "a"}})

	_, err := idx.Shortest("xa")
	var segErr *SegmentationError
	require.ErrorAs(t, err, &segErr)
	assert.Equal(t, 'x', segErr.Rune)
	assert.Equal(t, 0, segErr.Index)
}

func TestShortestNeedsEveryPositionCovered(t *testing.T) {
	_, idx := build([]struct{ code, word string }{{"zz", "甲乙"}})

	// 甲乙 is typeable as a whole, but no word ends after 甲, and the
	// scan gives up at the first such gap
	_, err := idx.Shortest("甲乙")
	var segErr *SegmentationError
	require.ErrorAs(t, err, &segErr)
	assert.Equal(t, '甲', segErr.Rune)
	assert.Equal(t, 0, segErr.Index)
}

func TestShortestDeterministic(t *testing.T) {
	for i := 0; i < 2; i++ {
		_, idx := build(jdPairs)
		for _, sentence := range []string{"你好吗", "你你好", "好吗"} {
			first, err := idx.Shortest(sentence)
			require.NoError(t, err)
			again, err := idx.Shortest(sentence)
			require.NoError(t, err)
			assert.Equal(t, first, again, "sentence %s", sentence)
		}
	}
}

func TestShortestRoundTripsThroughEval(t *testing.T) {
	trie, idx := build(jdPairs)

	for _, sentence := range []string{"你", "好", "吗", "你好", "好吗", "你好吗", "你你好", "你好吗你好"} {
		frags, err := idx.Shortest(sentence)
		require.NoError(t, err)
		assert.Equal(t, sentence, trie.Eval(strings.Join(frags, "")), "fragments %q", frags)
	}
}

// bruteMin enumerates every segmentation recursively and returns the
// cheapest keystroke total, or -1 when no segmentation covers the
// sentence. Trailing commit spaces are out of scope on both sides.
func bruteMin(idx *RevIndex, sent []rune, j int, from state, havePrev bool) int {
	if j == len(sent) {
		return 0
	}
	best := -1
	for i := j + 1; i <= len(sent); i++ {
		word := string(sent[j:i])
		item := idx.words.Get(patricia.Prefix(word))
		if item == nil {
			continue
		}
		info := item.(Info)
		cost := len(info.Code)
		if havePrev && idx.needsSelect(from, info.Code) {
			cost++
		}
		rest := bruteMin(idx, sent, i, state{node: info.Node, word: word}, true)
		if rest >= 0 && (best < 0 || cost+rest < best) {
			best = cost + rest
		}
	}
	return best
}

func typedCost(frags []string) int {
	total := 0
	for _, f := range frags {
		total += len(f)
	}
	if n := len(frags); n > 0 && frags[n-1] == " " {
		total--
	}
	return total
}

func TestShortestMatchesBruteForce(t *testing.T) {
	single := []struct{ code, word string }{
		{"a", "一"},
		{"a", "壹"},
		{"ax", "甲"},
		{"b", "二"},
		{"c", "三"},
		{"zzzz", "一二"},
		{"yyy", "二三"},
		{"xx", "一二三"},
	}

	cases := []struct {
		pairs     []struct{ code, word string }
		sentences []string
	}{
		{jdPairs, []string{"你", "你好", "好吗", "你好吗", "你你好", "吗你好吗"}},
		{single, []string{"一", "一二", "二三", "一二三", "一一二三", "三二一", "一二三一二三"}},
	}

	for _, tc := range cases {
		_, idx := build(tc.pairs)
		for _, sentence := range tc.sentences {
			frags, err := idx.Shortest(sentence)
			require.NoError(t, err, "sentence %s", sentence)

			want := bruteMin(idx, []rune(sentence), 0, state{}, false)
			require.GreaterOrEqual(t, want, 0, "sentence %s", sentence)
			assert.Equal(t, want, typedCost(frags), "sentence %s fragments %q", sentence, frags)
		}
	}
}
