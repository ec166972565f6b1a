package codetrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func jdTrie() *Trie {
	trie := New()
	for _, p := range []struct{ code, word string }{
		{"n ", "你"},
		{"h ", "好"},
		{"ms ", "吗"},
		{"nau", "你好"},
		{"hzms ", "好吗"},
	} {
		trie.Insert(p.code, p.word)
	}
	return trie
}

func TestEvalDecodesStreams(t *testing.T) {
	trie := jdTrie()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"full code at leaf", "nau", "你好"},
		{"auto commit then next segment", "naums ", "你好吗"},
		{"walk through split edge", "n ", "你"},
		{"unknown echoes", "q", "q"},
		{"apostrophe selects second", "n'", "你好"},
		{"digit one selects first", "n1", "你"},
		{"digit out of range falls back", "n5", "你5"},
		{"speculative commit keeps lookahead", "nq", "你q"},
		{"digit at root echoes", "5", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trie.Eval(tt.input))
		})
	}
}

func TestEvalSelectorCases(t *testing.T) {
	trie := New()
	trie.Insert("ab", "甲")
	trie.Insert("abc", "乙")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"space commits first", "ab ", "甲"},
		{"apostrophe commits second", "ab'", "乙"},
		{"deeper walk wins over selector", "abc", "乙"},
		{"leaf auto commit echoes tail", "abcx", "乙x"},
		{"non selector commits speculatively", "abd", "甲d"},
		{"end of input takes own word", "ab", "甲"},
		{"digit two commits second", "ab2", "乙"},
		{"digit nine out of range", "ab9", "甲9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trie.Eval(tt.input))
		})
	}
}

func TestEvalWordlessNode(t *testing.T) {
	trie := New()
	trie.Insert("abc", "乙")
	trie.Insert("abd", "丙")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"abandoned composition commits nothing", "ab", ""},
		{"candidates come from children", "abx", "乙x"},
		{"partial edge match echoes", " a", " a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trie.Eval(tt.input))
		})
	}
}

func TestEvalRoundTripsUnambiguousCodes(t *testing.T) {
	trie := jdTrie()
	// every full code whose node is a lone-word leaf decodes to its word
	err := trie.Visit(func(id NodeID, fullCode string) error {
		w := trie.Words(id)
		if len(w) == 1 && !trie.Ambiguous(id) {
			assert.Equal(t, w[0], trie.Eval(fullCode), "code %q", fullCode)
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestSelectorIndex(t *testing.T) {
	tests := []struct {
		r   rune
		idx int
		ok  bool
	}{
		{' ', 0, true},
		{'\'', 1, true},
		{'1', 0, true},
		{'9', 8, true},
		{'0', 0, false},
		{'a', 0, false},
		{'你', 0, false},
	}
	for _, tt := range tests {
		idx, ok := selectorIndex(tt.r)
		assert.Equal(t, tt.ok, ok, "rune %q", tt.r)
		if ok {
			assert.Equal(t, tt.idx, idx, "rune %q", tt.r)
		}
	}
}
