package codetrie

import (
	"strings"
	"unicode/utf8"
)

// selectorIndex maps a selector keystroke to the candidate slot it
// picks: space takes the first candidate, the apostrophe the second,
// digits 1-9 count from one. Every other rune is ordinary input.
func selectorIndex(r rune) (int, bool) {
	switch {
	case r == ' ':
		return 0, true
	case r == '\'':
		return 1, true
	case r >= '1' && r <= '9':
		return int(r - '1'), true
	}
	return 0, false
}

// Eval decodes a raw keystroke stream the way an IME session would and
// returns the committed text. Each segment walks from the root to the
// deepest node whose full code prefixes the unconsumed input, then the
// next keystroke decides:
//
//   - nothing matched, or the node offers no candidate: the keystroke
//     is echoed literally (unknown input passes through);
//   - a lone word on a leaf commits by itself and the keystroke starts
//     the next segment;
//   - on an ambiguous node a selector keystroke commits its candidate
//     and is consumed, even when its index is out of range (then the
//     first candidate plus the literal keystroke come out);
//   - any other keystroke commits the first candidate speculatively
//     and is left for the next segment.
//
// When input ends mid-walk the reached node's own first word, if any,
// is committed. Eval never fails; eval of the empty string is empty.
func (t *Trie) Eval(input string) string {
	var out strings.Builder
	rest := input
	for rest != "" {
		id, n := t.descend(rest)
		rest = rest[n:]
		if rest == "" {
			if w := t.nodes[id].words; len(w) > 0 {
				out.WriteString(w[0])
			}
			break
		}
		r, size := utf8.DecodeRuneInString(rest)
		cands := t.Candidates(id)
		switch {
		case n == 0 || len(cands) == 0:
			out.WriteRune(r)
			rest = rest[size:]
		case len(t.nodes[id].words) == 1 && len(t.nodes[id].children) == 0:
			out.WriteString(t.nodes[id].words[0])
		default:
			idx, ok := selectorIndex(r)
			if !ok {
				out.WriteString(cands[0])
				continue
			}
			rest = rest[size:]
			if idx < len(cands) {
				out.WriteString(cands[idx])
			} else {
				out.WriteString(cands[0])
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

// descend walks from the root for as long as whole child segments match
// the input, returning the deepest node reached and the matched byte
// count.
func (t *Trie) descend(input string) (NodeID, int) {
	id := rootID
	n := 0
	for n < len(input) {
		cid, ok := t.childFor(id, input[n:])
		if !ok {
			break
		}
		seg := t.nodes[cid].segment
		if !strings.HasPrefix(input[n:], seg) {
			break
		}
		id = cid
		n += len(seg)
	}
	return id, n
}
