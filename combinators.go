package packrat

import "sync"

// Satisfy returns a leaf parser that, at position p, reads the rune at p
// (failing at end of input) and succeeds with (p+1, rune) iff pred(rune).
// name is used in the failure reason. Satisfy, Char and AnyChar are the
// only leaf parsers; every other combinator is built from one of these
// plus other parsers (spec.md §4.1).
func Satisfy(name string, pred func(rune) bool) *Parser[rune] {
	return newParser(name, func(pos Position, ctx *Context) (Position, rune, *ParseError) {
		r, ok := ctx.input.At(pos)
		if !ok {
			return pos, 0, newParseError(ctx.input, pos, reasonExpectedGot(name, 0, true))
		}
		if !pred(r) {
			return pos, 0, newParseError(ctx.input, pos, reasonExpectedGot(name, r, false))
		}
		return pos + 1, r, nil
	})
}

// AnyChar matches any single rune, failing only at end of input.
func AnyChar() *Parser[rune] {
	return Satisfy("any char", func(rune) bool { return true })
}

// Char matches exactly the rune c.
func Char(c rune) *Parser[rune] {
	return Satisfy("char '"+string(c)+"'", func(r rune) bool { return r == c })
}

// Map succeeds with f(v) whenever p succeeds with v, at the same position
// p left off at; failures of p propagate unchanged. Map changing the
// result type is why this is a free function rather than a method: Go
// does not allow a generic method to introduce a type parameter beyond
// its receiver's.
func Map[T, S any](p *Parser[T], f func(T) S) *Parser[S] {
	name := p.name
	return newParser(name, func(pos Position, ctx *Context) (Position, S, *ParseError) {
		newPos, val, err := p.Parse(pos, ctx)
		if err != nil {
			var zero S
			return newPos, zero, err
		}
		return newPos, f(val), nil
	})
}

// TryMap is like Map, but f may decline to produce a value. A false second
// return value converts what would have been a success into a failure at
// the post-p position, with reason "try_map produced none".
func TryMap[T, S any](p *Parser[T], f func(T) (S, bool)) *Parser[S] {
	name := p.name
	return newParser(name, func(pos Position, ctx *Context) (Position, S, *ParseError) {
		newPos, val, err := p.Parse(pos, ctx)
		if err != nil {
			var zero S
			return newPos, zero, err
		}
		out, ok := f(val)
		if !ok {
			var zero S
			return newPos, zero, newParseError(ctx.input, newPos, "try_map produced none")
		}
		return newPos, out, nil
	})
}

// Pair is the result of And: the left and right values of a sequential
// composition.
type Pair[T, S any] struct {
	Left  T
	Right S
}

// And sequences p then q: parse p, then from its end position parse q.
// The result is the pair of both values. Failure of either propagates
// with its own position; q is never attempted if p failed.
func And[T, S any](p *Parser[T], q *Parser[S]) *Parser[Pair[T, S]] {
	name := p.name + " and " + q.name
	return newParser(name, func(pos Position, ctx *Context) (Position, Pair[T, S], *ParseError) {
		midPos, left, err := p.Parse(pos, ctx)
		if err != nil {
			return midPos, Pair[T, S]{}, err
		}
		endPos, right, err := q.Parse(midPos, ctx)
		if err != nil {
			return endPos, Pair[T, S]{}, err
		}
		return endPos, Pair[T, S]{Left: left, Right: right}, nil
	})
}

// Andl is And keeping only the left result.
func Andl[T, S any](p *Parser[T], q *Parser[S]) *Parser[T] {
	return Map(And(p, q), func(pair Pair[T, S]) T { return pair.Left })
}

// Andr is And keeping only the right result.
func Andr[T, S any](p *Parser[T], q *Parser[S]) *Parser[S] {
	return Map(And(p, q), func(pair Pair[T, S]) S { return pair.Right })
}

// Or implements PEG ordered choice: try p; on failure, try q from the
// original position. If both fail, the failure with the greater position
// wins; on a tie, q's failure wins (the later-tried alternative), since it
// was reached with as much context as p's (spec.md §7).
func (p *Parser[T]) Or(q *Parser[T]) *Parser[T] {
	name := p.name + " or " + q.name
	return newParser(name, func(pos Position, ctx *Context) (Position, T, *ParseError) {
		leftPos, leftVal, leftErr := p.Parse(pos, ctx)
		if leftErr == nil {
			return leftPos, leftVal, nil
		}
		rightPos, rightVal, rightErr := q.Parse(pos, ctx)
		if rightErr == nil {
			return rightPos, rightVal, nil
		}
		var zero T
		if rightErr.Pos >= leftErr.Pos {
			return pos, zero, rightErr
		}
		return pos, zero, leftErr
	})
}

// Many applies p zero or more times, greedily, with no backtracking: it
// repeats until p fails, and always succeeds with the accumulated values.
// A successful iteration that does not advance the position ends the
// repetition instead of looping forever (spec.md §4.2).
func (p *Parser[T]) Many() *Parser[[]T] {
	name := "many " + p.name
	return newParser(name, func(pos Position, ctx *Context) (Position, []T, *ParseError) {
		var acc []T
		cur := pos
		for {
			newPos, val, err := p.Parse(cur, ctx)
			if err != nil {
				break
			}
			if newPos == cur {
				break
			}
			acc = append(acc, val)
			cur = newPos
		}
		return cur, acc, nil
	})
}

// Many1 is p followed by p.Many(); it fails iff the first attempt fails.
func (p *Parser[T]) Many1() *Parser[[]T] {
	name := "many1 " + p.name
	manyP := p.Many()
	return newParser(name, func(pos Position, ctx *Context) (Position, []T, *ParseError) {
		firstPos, first, err := p.Parse(pos, ctx)
		if err != nil {
			return pos, nil, err
		}
		restPos, rest, _ := manyP.Parse(firstPos, ctx)
		acc := make([]T, 0, len(rest)+1)
		acc = append(acc, first)
		acc = append(acc, rest...)
		return restPos, acc, nil
	})
}

// Opt tries p; on failure, succeeds with (false, zero value) at the
// original position, leaving no trace of the attempt in the result.
func (p *Parser[T]) Opt() *Parser[Optional[T]] {
	name := "opt " + p.name
	return newParser(name, func(pos Position, ctx *Context) (Position, Optional[T], *ParseError) {
		newPos, val, err := p.Parse(pos, ctx)
		if err != nil {
			return pos, Optional[T]{}, nil
		}
		return newPos, Optional[T]{Value: val, Present: true}, nil
	})
}

// Optional is the result of Opt: a value that may or may not be present.
type Optional[T any] struct {
	Value   T
	Present bool
}

// End succeeds with p's value iff after p the position equals the input
// length; otherwise it fails. The value is kept, not discarded.
func (p *Parser[T]) End() *Parser[T] {
	name := p.name + " end"
	return newParser(name, func(pos Position, ctx *Context) (Position, T, *ParseError) {
		newPos, val, err := p.Parse(pos, ctx)
		if err != nil {
			var zero T
			return newPos, zero, err
		}
		if !ctx.input.AtEnd(newPos) {
			var zero T
			return newPos, zero, newParseError(ctx.input, newPos, "expected end of input")
		}
		return newPos, val, nil
	})
}

// Rename returns a parser with p's id and raw behavior but a new display
// name. Because the id is unchanged, memoization identity -- and so the
// left-recursion machinery -- is unaffected; only diagnostics change.
func (p *Parser[T]) Rename(name string) *Parser[T] {
	return &Parser[T]{id: p.id, name: name, raw: p.raw}
}

// Lazy returns a forward reference P whose id is fixed immediately.
// build(P) is invoked exactly once, the first time P is parsed, to
// produce the real parser body; P then delegates to that body under its
// own id, so every recursive reference to P inside build shares one
// memoization identity (spec.md §4.3). This is how recursive and mutually
// recursive grammar rules are expressed.
func Lazy[T any](name string, build func(p *Parser[T]) *Parser[T]) *Parser[T] {
	p := &Parser[T]{id: newParserID(), name: name}

	var once sync.Once
	var real *Parser[T]

	p.raw = func(pos Position, ctx *Context) (Position, T, *ParseError) {
		once.Do(func() {
			real = build(p)
		})
		return real.raw(pos, ctx)
	}

	return p
}
