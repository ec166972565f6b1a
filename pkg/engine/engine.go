// Package engine assembles a ready-to-query encoder from loaded
// dictionary entries: trie construction, reverse index derivation,
// and the decode/encode entry points the REPL and server call.
package engine

import (
	"github.com/charmbracelet/log"

	"github.com/kagura-dev/typeway/pkg/codetrie"
	"github.com/kagura-dev/typeway/pkg/dictionary"
	"github.com/kagura-dev/typeway/pkg/encode"
)

// Engine owns a frozen code trie and the reverse index derived from
// it. Build it once with New; afterwards every method is a pure
// traversal and safe for concurrent use.
type Engine struct {
	trie    *codetrie.Trie
	idx     *encode.RevIndex
	entries int
}

// Stats reports the sizes of the loaded structures.
type Stats struct {
	Entries int
	Words   int
	Nodes   int
}

// New inserts every entry in file order and freezes the result.
func New(entries []dictionary.Entry) *Engine {
	trie := codetrie.New()
	for _, e := range entries {
		trie.Insert(e.Code, e.Word)
	}
	idx := encode.Build(trie)
	log.Debugf("Engine ready: %d entries, %d nodes, %d indexed words",
		len(entries), trie.Len(), idx.Size())

	return &Engine{trie: trie, idx: idx, entries: len(entries)}
}

// Eval feeds a raw keystroke stream through the decoder.
func (e *Engine) Eval(input string) string {
	return e.trie.Eval(input)
}

// Shortest returns the cheapest keystroke fragments that decode back
// into sentence.
func (e *Engine) Shortest(sentence string) ([]string, error) {
	return e.idx.Shortest(sentence)
}

// Lookup returns the shortest full code reaching word.
func (e *Engine) Lookup(word string) (string, bool) {
	return e.idx.Get(word)
}

// Trie exposes the frozen trie for callers that walk it directly.
func (e *Engine) Trie() *codetrie.Trie {
	return e.trie
}

func (e *Engine) Stats() Stats {
	return Stats{
		Entries: e.entries,
		Words:   e.idx.Size(),
		Nodes:   e.trie.Len(),
	}
}
