/*
Package codetrie stores an input-method dictionary as a compressed
prefix trie over keystroke codes and decodes raw keystroke streams
against it.

A dictionary entry maps a word (usually CJK text) to a code (the keys
typed to produce it). Codes share long prefixes, so edges carry whole
label strings rather than single characters, and one node may hold
several words when codes collide. Nodes live in a flat arena slice and
refer to each other by index, which keeps the structure compact and
lets a node split without invalidating anything that points at it.

The trie has two phases. During the build phase Insert is called once
per dictionary line; none of it is safe for concurrent use. After the
last Insert the trie is frozen by convention: every read operation
(Eval, FullCode, Candidates, Visit) is then safe for any number of
concurrent readers.
*/
package codetrie

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// NodeID indexes a node inside a Trie's arena.
type NodeID int32

const (
	rootID   NodeID = 0
	noParent NodeID = -1
)

// node is one arena entry. segment is the edge label leading here from
// the parent (empty for the root). words holds the entries whose full
// code ends exactly here, in insertion order, duplicates included.
// children maps each child's full segment to its index; siblings always
// differ in the first rune of their segment.
type node struct {
	segment  string
	words    []string
	children map[string]NodeID
	parent   NodeID
}

// Trie is the arena. Index 0 is the root; indices are stable for the
// lifetime of the trie.
type Trie struct {
	nodes []node
}

// New returns a trie holding only the root.
func New() *Trie {
	return &Trie{nodes: []node{{parent: noParent}}}
}

// Len returns the number of nodes in the arena, root included.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// Insert adds word under code, splitting edges as needed. An empty code
// attaches the word to the root. Duplicate pairs accumulate: the word
// list is a bag, and trimming duplicates is a file-maintenance job, not
// the trie's.
func (t *Trie) Insert(code, word string) {
	id := rootID
	rest := code
	for rest != "" {
		cid, ok := t.childFor(id, rest)
		if !ok {
			t.attachLeaf(id, rest, word)
			return
		}
		seg := t.nodes[cid].segment
		m := commonPrefixLen(seg, rest)
		rest = rest[m:]
		id = cid
		if m < len(seg) {
			t.split(cid, m)
			if rest == "" {
				break
			}
			t.attachLeaf(cid, rest, word)
			return
		}
	}
	t.nodes[id].words = append(t.nodes[id].words, word)
}

// childFor finds the child of id whose segment starts with the first
// rune of rest: a direct map hit when the edge is a single rune, a
// linear scan otherwise. At most one child can match.
func (t *Trie) childFor(id NodeID, rest string) (NodeID, bool) {
	ch := t.nodes[id].children
	if len(ch) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if cid, ok := ch[rest[:size]]; ok {
		return cid, true
	}
	for seg, cid := range ch {
		if first, _ := utf8.DecodeRuneInString(seg); first == r {
			return cid, true
		}
	}
	return 0, false
}

// split cuts the node's segment at m bytes. Its words and children move
// intact onto a fresh child carrying the remaining segment; relocated
// grandchildren are re-pointed at that child.
func (t *Trie) split(id NodeID, m int) {
	old := t.nodes[id]
	moved := node{
		segment:  old.segment[m:],
		words:    old.words,
		children: old.children,
		parent:   id,
	}
	t.nodes = append(t.nodes, moved)
	nid := NodeID(len(t.nodes) - 1)
	for _, gid := range moved.children {
		t.nodes[gid].parent = nid
	}
	t.nodes[id].segment = old.segment[:m]
	t.nodes[id].words = nil
	t.nodes[id].children = map[string]NodeID{moved.segment: nid}
}

func (t *Trie) attachLeaf(id NodeID, seg, word string) {
	t.nodes = append(t.nodes, node{segment: seg, words: []string{word}, parent: id})
	nid := NodeID(len(t.nodes) - 1)
	if t.nodes[id].children == nil {
		t.nodes[id].children = make(map[string]NodeID)
	}
	t.nodes[id].children[seg] = nid
}

// FullCode reconstructs the complete code of a node by climbing parent
// links and concatenating the segments root-first.
func (t *Trie) FullCode(id NodeID) string {
	var segs []string
	for id != noParent {
		segs = append(segs, t.nodes[id].segment)
		id = t.nodes[id].parent
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteString(segs[i])
	}
	return b.String()
}

// Words returns the node's own word list in insertion order.
func (t *Trie) Words(id NodeID) []string {
	return t.nodes[id].words
}

// Candidates returns what an IME would offer after typing the node's
// full code: the node's own words followed by each direct child's first
// word, children in segment order. Wordless children contribute
// nothing.
func (t *Trie) Candidates(id NodeID) []string {
	n := t.nodes[id]
	out := make([]string, 0, len(n.words)+len(n.children))
	out = append(out, n.words...)
	for _, seg := range t.ChildSegments(id) {
		if w := t.nodes[n.children[seg]].words; len(w) > 0 {
			out = append(out, w[0])
		}
	}
	return out
}

// ChildSegments returns the node's child edge labels sorted, so that
// every order-sensitive walk over children is deterministic.
func (t *Trie) ChildSegments(id NodeID) []string {
	ch := t.nodes[id].children
	if len(ch) == 0 {
		return nil
	}
	segs := make([]string, 0, len(ch))
	for seg := range ch {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	return segs
}

// Ambiguous reports whether a commit at this node needs a selector
// keystroke: more than one word, or children the decoder could still
// walk into.
func (t *Trie) Ambiguous(id NodeID) bool {
	n := t.nodes[id]
	return len(n.words) > 1 || len(n.children) > 0
}

// Visit walks the whole trie depth-first, children in segment order,
// handing fn each node's id and full code. fn's first error stops the
// walk.
func (t *Trie) Visit(fn func(id NodeID, fullCode string) error) error {
	return t.visit(rootID, "", fn)
}

func (t *Trie) visit(id NodeID, code string, fn func(NodeID, string) error) error {
	if err := fn(id, code); err != nil {
		return err
	}
	for _, seg := range t.ChildSegments(id) {
		if err := t.visit(t.nodes[id].children[seg], code+seg, fn); err != nil {
			return err
		}
	}
	return nil
}

// commonPrefixLen returns the byte length of the longest rune-aligned
// common prefix of a and b.
func commonPrefixLen(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) {
		ra, n := utf8.DecodeRuneInString(a[i:])
		rb, _ := utf8.DecodeRuneInString(b[i:])
		if ra != rb {
			break
		}
		i += n
	}
	return i
}
