/*
Package encode turns text back into keystrokes: it derives a reverse
index (word to shortest full code) from a frozen code trie and computes
minimum-keystroke typing plans for whole sentences, selector spaces
included.
*/
package encode

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/kagura-dev/typeway/pkg/codetrie"
)

// Info ties an indexed word to the shortest full code producing it and
// the node holding it.
type Info struct {
	Code string
	Node codetrie.NodeID
}

// RevIndex maps every word of a frozen trie back to its shortest full
// code. The words live in a patricia trie keyed by the word bytes,
// which serves exact lookups and, for the sentence encoder, the scan
// for all dictionary words prefixing a given sentence tail. Build once;
// reads are then safe for any number of concurrent readers.
type RevIndex struct {
	trie  *codetrie.Trie
	words *patricia.Trie
	size  int
}

// Build runs one depth-first traversal over trie and indexes every word
// it holds. A word found under several nodes keeps the shorter full
// code (byte length); equal lengths keep the first in traversal order.
// Zero-length words are skipped: they cover no sentence position.
func Build(trie *codetrie.Trie) *RevIndex {
	idx := &RevIndex{trie: trie, words: patricia.NewTrie()}
	err := trie.Visit(func(id codetrie.NodeID, fullCode string) error {
		for _, w := range trie.Words(id) {
			if w == "" {
				continue
			}
			key := patricia.Prefix(w)
			if item := idx.words.Get(key); item != nil {
				if len(fullCode) >= len(item.(Info).Code) {
					continue
				}
			} else {
				idx.size++
			}
			idx.words.Set(key, Info{Code: fullCode, Node: id})
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie: %v", err)
	}
	log.Debugf("reverse index ready: %d words from %d nodes", idx.size, trie.Len())
	return idx
}

// Get returns the shortest full code for word.
func (idx *RevIndex) Get(word string) (string, bool) {
	item := idx.words.Get(patricia.Prefix(word))
	if item == nil {
		return "", false
	}
	return item.(Info).Code, true
}

// Size returns the number of distinct indexed words.
func (idx *RevIndex) Size() int {
	return idx.size
}
