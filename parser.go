package packrat

import "sync/atomic"

// ParserID is a process-wide unique, stable identifier assigned to each
// combinator instance at construction. Two combinators built at different
// times, even with identical behavior, have distinct ids; the id is what
// identifies a node in the combinator graph for memoization purposes
// (spec.md §3).
type ParserID uint64

var nextParserID uint64

func newParserID() ParserID {
	return ParserID(atomic.AddUint64(&nextParserID, 1))
}

// rawFunc is the body of a parser: given a position and the shared
// Context, produce a new position and a value, or a failure.
type rawFunc[T any] func(pos Position, ctx *Context) (Position, T, *ParseError)

// Parser is an immutable node in a grammar, producing values of type T.
// Parsers are constructed once at grammar-build time, are safe to share
// freely, and are driven through Parse (directly, or via Run at the top
// level). All memoization, left-recursion detection, and seed growing
// happens in the driver, uniformly across every combinator.
type Parser[T any] struct {
	id   ParserID
	name string
	raw  rawFunc[T]
}

// newParser allocates a fresh id and wraps raw as a Parser[T].
func newParser[T any](name string, raw rawFunc[T]) *Parser[T] {
	return &Parser[T]{id: newParserID(), name: name, raw: raw}
}

// ID returns the parser's stable identity.
func (p *Parser[T]) ID() ParserID { return p.id }

// Name returns the parser's display name, used in diagnostics.
func (p *Parser[T]) Name() string { return p.name }

// Run constructs a fresh Context over source and parses from position 0.
// It does not require the whole input to be consumed -- chain .End() onto
// p for that (spec.md §4.5).
func (p *Parser[T]) Run(source string, opts ...Option) (T, error) {
	ctx := NewContext(source, opts...)
	ctx.logger.Info("run start", "correlation_id", ctx.id, "parser", p.name, "len", ctx.input.Len())
	_, val, err := p.Parse(0, ctx)
	if err != nil {
		ctx.logger.Info("run failed", "correlation_id", ctx.id, "parser", p.name, "pos", err.Pos, "reason", err.Reason)
		var zero T
		return zero, err
	}
	ctx.logger.Info("run ok", "correlation_id", ctx.id, "parser", p.name)
	return val, nil
}

// Parse is the reentrant driver entry point described in spec.md §4.4.
// Given a position and the shared Context, with K = (p.id, pos):
//
//  1. Cache probe: a Resolved entry is returned as-is; a Pending entry is
//     a left-recursive reentry -- push K onto lr_stack (idempotently),
//     schedule eviction of every call_path entry strictly between the
//     reentry and K, and return a synthetic "left recursion unresolved"
//     failure.
//  2. Mark K Pending, push K onto call_path.
//  3. Evaluate the raw body; this is the seed. Store it as Resolved.
//  4. If this frame is the outermost reentrant frame for K (top of
//     lr_stack), grow the seed: evict K's scheduled dependents, re-run the
//     raw body, and adopt the new result whenever it makes strictly more
//     progress (or turns a failure into a same-position success),
//     repeating until a re-run makes no more progress. Clear K's eviction
//     schedule and pop lr_stack.
//  5. Pop call_path, return the result.
func (p *Parser[T]) Parse(pos Position, ctx *Context) (Position, T, *ParseError) {
	return driverParse(p.id, p.name, pos, ctx, p.raw)
}

func driverParse[T any](id ParserID, name string, pos Position, ctx *Context, raw rawFunc[T]) (Position, T, *ParseError) {
	key := CacheKey{ID: id, Pos: pos}

	// Step 1: cache probe.
	if entry, ok := ctx.cache.get(key); ok {
		switch entry.state {
		case cacheResolved:
			r := entry.value.(result[T])
			ctx.logger.Trace("cache hit", "correlation_id", ctx.id, "parser", name, "pos", pos)
			return r.pos, r.val, r.err
		case cachePending:
			ctx.logger.Debug("left recursion detected", "correlation_id", ctx.id, "parser", name, "pos", pos)
			ctx.pushLR(key)
			ctx.scheduleEviction(key)
			var zero T
			return pos, zero, newParseError(ctx.input, pos, "left recursion unresolved")
		}
	}

	if ctx.maxDepth > 0 && ctx.depth() >= ctx.maxDepth {
		var zero T
		return pos, zero, newParseError(ctx.input, pos, "maximum grammar depth exceeded")
	}

	// Step 2: mark pending, push call path.
	ctx.cache.set(key, &cacheEntry{state: cachePending})
	ctx.pushCallPath(key)
	ctx.logger.Trace("enter", "correlation_id", ctx.id, "parser", name, "pos", pos)

	// Step 3: seed evaluation.
	seedPos, seedVal, seedErr := raw(pos, ctx)
	best := result[T]{pos: seedPos, val: seedVal, err: seedErr}
	ctx.cache.set(key, &cacheEntry{state: cacheResolved, value: best})

	// Step 4: growth, only when this frame is the recursion head.
	if ctx.isRecursionHead(key) {
		if best.err == nil {
			for {
				ctx.executeEviction(key)
				newPos, newVal, newErr := raw(pos, ctx)

				grew := newErr == nil && (newPos > best.pos || (newPos == best.pos && best.err != nil))
				if !grew {
					break
				}

				best = result[T]{pos: newPos, val: newVal, err: newErr}
				ctx.cache.set(key, &cacheEntry{state: cacheResolved, value: best})
				ctx.logger.Debug("seed grown", "correlation_id", ctx.id, "parser", name, "pos", pos, "new_end", newPos)
			}
		}
		ctx.clearEvictionSchedule(key)
		ctx.popLR(key)
	}

	// Step 5: unwind.
	ctx.popCallPath(key)
	ctx.logger.Trace("exit", "correlation_id", ctx.id, "parser", name, "pos", pos, "end", best.pos, "ok", best.err == nil)
	return best.pos, best.val, best.err
}
