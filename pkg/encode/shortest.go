package encode

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/kagura-dev/typeway/pkg/codetrie"
)

// SegmentationError reports the first scalar value of a sentence that
// no dictionary word covers.
type SegmentationError struct {
	Rune  rune
	Index int
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("can't generate the sentence from the dictionary, see '%c' at %d", e.Rune, e.Index)
}

// state is one dp cell: the cheapest typing of the sentence prefix
// ending at this scalar position. frag is the final segment's code,
// space-prefixed when a disambiguating selector precedes it; cost is
// total typed bytes including such spaces; cost -1 marks an unreached
// position.
type state struct {
	cost int
	frag string
	prev int
	node codetrie.NodeID
	word string
}

// Shortest computes the cheapest keystroke sequence that types the
// sentence, returned as ordered fragments: one code per committed word,
// space-prefixed where a disambiguating selector is needed, plus a
// trailing standalone " " when the final word still needs a commit.
// Concatenating the fragments gives the exact key sequence.
//
// dp[i] covers the first i scalar values. Every dictionary word w
// starting at position j relaxes dp[j+len(w)] with dp[j] plus the
// fragment's byte length; start positions run in ascending order and
// replacement uses strict <, which keeps the leftmost split among
// equal-cost candidates. A position no word reaches aborts the scan
// with a SegmentationError for the scalar just before it.
//
// A disambiguating space is charged on the transition out of a state
// whose committed word is the first candidate of an ambiguous node,
// when some child segment of that node literally prefixes the next
// code: without the space the decoder would keep walking instead of
// committing. The rule looks one segment ahead only.
func (idx *RevIndex) Shortest(sentence string) ([]string, error) {
	if sentence == "" {
		return nil, nil
	}
	starts := runeStarts(sentence)
	n := len(starts) - 1
	dp := make([]state, n+1)
	for i := 1; i <= n; i++ {
		dp[i].cost = -1
	}
	for j := 0; j < n; j++ {
		if dp[j].cost < 0 {
			return nil, failAt(sentence, starts, j)
		}
		from := dp[j]
		base := starts[j]
		err := idx.words.VisitPrefixes(patricia.Prefix(sentence[base:]), func(p patricia.Prefix, item patricia.Item) error {
			if len(p) == 0 {
				return nil
			}
			i := sort.SearchInts(starts, base+len(p))
			if i >= len(starts) || starts[i] != base+len(p) {
				return nil
			}
			info := item.(Info)
			frag := info.Code
			if j > 0 && idx.needsSelect(from, frag) {
				frag = " " + frag
			}
			if cand := from.cost + len(frag); dp[i].cost < 0 || cand < dp[i].cost {
				dp[i] = state{cost: cand, frag: frag, prev: j, node: info.Node, word: string(p)}
			}
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting word prefixes: %v", err)
		}
	}
	if dp[n].cost < 0 {
		return nil, failAt(sentence, starts, n)
	}

	frags := make([]string, 0, n)
	for pos := n; pos > 0; pos = dp[pos].prev {
		frags = append(frags, dp[pos].frag)
	}
	for l, r := 0, len(frags)-1; l < r; l, r = l+1, r-1 {
		frags[l], frags[r] = frags[r], frags[l]
	}
	if idx.trie.Ambiguous(dp[n].node) {
		frags = append(frags, " ")
	}
	return frags, nil
}

// needsSelect applies the one-step disambiguation rule to the
// transition out of a committed state.
func (idx *RevIndex) needsSelect(from state, code string) bool {
	cands := idx.trie.Candidates(from.node)
	if len(cands) < 2 || cands[0] != from.word {
		return false
	}
	for _, seg := range idx.trie.ChildSegments(from.node) {
		if strings.HasPrefix(code, seg) {
			return true
		}
	}
	return false
}

// failAt names the scalar closing the first uncovered position.
func failAt(sentence string, starts []int, pos int) *SegmentationError {
	r, _ := utf8.DecodeRuneInString(sentence[starts[pos-1]:])
	return &SegmentationError{Rune: r, Index: pos - 1}
}

// runeStarts returns every scalar's byte offset plus the final length,
// so position i maps to byte boundary starts[i].
func runeStarts(s string) []int {
	starts := make([]int, 0, len(s)+1)
	for i := range s {
		starts = append(starts, i)
	}
	return append(starts, len(s))
}
