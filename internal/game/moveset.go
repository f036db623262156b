package game

import (
	"sort"
	"strings"
)

// MoveSet is a set of 4-character source+target move strings.
type MoveSet map[string]struct{}

// ParseMoveSet splits a comma-separated list. The empty string is the empty set.
func ParseMoveSet(s string) MoveSet {
	set := make(MoveSet)
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		set[m] = struct{}{}
	}
	return set
}

// NewMoveSet builds a set from individual moves.
func NewMoveSet(moves ...string) MoveSet {
	set := make(MoveSet, len(moves))
	for _, m := range moves {
		set[m] = struct{}{}
	}
	return set
}

// Has reports whether m is in the set. A nil set holds nothing.
func (s MoveSet) Has(m string) bool {
	_, ok := s[m]
	return ok
}

func (s MoveSet) Len() int { return len(s) }

// Sorted returns the moves in lexical order.
func (s MoveSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// String joins the moves back into the wire form.
func (s MoveSet) String() string { return strings.Join(s.Sorted(), ",") }

func (s MoveSet) clone() MoveSet {
	out := make(MoveSet, len(s))
	for m := range s {
		out[m] = struct{}{}
	}
	return out
}

// validSquare checks a two-character square like "e4".
func validSquare(sq string) bool {
	return len(sq) == 2 && sq[0] >= 'a' && sq[0] <= 'h' && sq[1] >= '1' && sq[1] <= '8'
}

func validMove(m string) bool {
	return len(m) == 4 && validSquare(m[:2]) && validSquare(m[2:])
}
