package packrat

import "strings"

// Position is a non-negative index into an Input's rune sequence. It is
// monotonic under successful sub-parses: a parser never returns a position
// smaller than the one it started from.
type Position int

// Input is an immutable, O(1)-indexable sequence of Unicode scalar values.
// It is materialized once, at Context construction, from the source
// string; its length never changes over the life of a Context.
type Input struct {
	runes []rune
}

// NewInput materializes source into an Input.
func NewInput(source string) Input {
	return Input{runes: []rune(source)}
}

// Len returns the number of runes in the input.
func (in Input) Len() int {
	return len(in.runes)
}

// At returns the rune at pos and true, or (0, false) if pos is at or past
// end of input.
func (in Input) At(pos Position) (rune, bool) {
	if int(pos) < 0 || int(pos) >= len(in.runes) {
		return 0, false
	}
	return in.runes[int(pos)], true
}

// AtEnd reports whether pos is exactly the end-of-input position.
func (in Input) AtEnd(pos Position) bool {
	return int(pos) == len(in.runes)
}

// String renders the full input back to a string, for diagnostics.
func (in Input) String() string {
	var b strings.Builder
	b.Grow(len(in.runes))
	for _, r := range in.runes {
		b.WriteRune(r)
	}
	return b.String()
}

// Slice returns the substring of the input between [from, to).
func (in Input) Slice(from, to Position) string {
	if from < 0 {
		from = 0
	}
	if int(to) > len(in.runes) {
		to = Position(len(in.runes))
	}
	if from >= to {
		return ""
	}
	return string(in.runes[from:to])
}
