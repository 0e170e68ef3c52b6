package packrat

import "github.com/google/uuid"

// maxDepthUnbounded is the default value of Context.maxDepth: no soft
// limit on call_path depth.
const maxDepthUnbounded = 0

// Context is the per-parse mutable state: the memo cache, the
// left-recursion stack, the in-flight call path, and the eviction
// schedule. A Context is exclusively owned by the single top-level parse
// that created it (spec.md §5) and must not be shared across parses run
// against different input -- see NewContext.
type Context struct {
	input  Input
	cache  *memoTable
	logger Logger
	id     uuid.UUID

	// lrStack holds the CacheKeys for which left recursion has been
	// detected and is currently being resolved, in detection order.
	lrStack []CacheKey

	// callPath holds one CacheKey per in-flight parse call, in call
	// order. It is a strict postfix of the true Go call stack.
	callPath []CacheKey

	// evictionSchedule maps a recursion-head CacheKey to the CacheKeys
	// whose memo entries must be evicted before each regrowth attempt.
	evictionSchedule map[CacheKey][]CacheKey

	// maxDepth, if non-zero, bounds len(callPath); exceeding it turns
	// into a ParseError instead of a native stack overflow (SPEC_FULL.md
	// §2.2).
	maxDepth int
}

// NewContext constructs a fresh Context over source.
//
// Sharing a Context across more than one top-level Run is unsupported:
// the memo cache would answer later parses with results cached against an
// earlier, possibly different, input. Always obtain a Context via
// NewContext (or Parser[T].Run, which does this for you) for each parse.
func NewContext(source string, opts ...Option) *Context {
	ctx := &Context{
		input:            NewInput(source),
		cache:            newMemoTable(),
		logger:           NopLogger(),
		id:               uuid.New(),
		evictionSchedule: make(map[CacheKey][]CacheKey),
		maxDepth:         maxDepthUnbounded,
	}
	applyOptions(ctx, opts)
	return ctx
}

// Input returns the Input this Context was constructed over.
func (ctx *Context) Input() Input { return ctx.input }

func (ctx *Context) pushCallPath(key CacheKey) {
	ctx.callPath = append(ctx.callPath, key)
}

func (ctx *Context) popCallPath(key CacheKey) {
	n := len(ctx.callPath)
	if n == 0 || ctx.callPath[n-1] != key {
		panic("packrat: call_path underflow or mismatch")
	}
	ctx.callPath = ctx.callPath[:n-1]
}

func (ctx *Context) depth() int { return len(ctx.callPath) }

// pushLR pushes key onto lrStack, idempotently: it is a no-op if key is
// already the top entry (spec.md §4.4 step 1).
func (ctx *Context) pushLR(key CacheKey) {
	n := len(ctx.lrStack)
	if n > 0 && ctx.lrStack[n-1] == key {
		return
	}
	ctx.lrStack = append(ctx.lrStack, key)
}

// popLR pops the top of lrStack, which must equal key.
func (ctx *Context) popLR(key CacheKey) {
	n := len(ctx.lrStack)
	if n == 0 || ctx.lrStack[n-1] != key {
		panic("packrat: lr_stack underflow or mismatch")
	}
	ctx.lrStack = ctx.lrStack[:n-1]
}

func (ctx *Context) isRecursionHead(key CacheKey) bool {
	n := len(ctx.lrStack)
	return n > 0 && ctx.lrStack[n-1] == key
}

// scheduleEviction walks call_path from the back toward the front,
// collecting every key encountered strictly before key is reached, and
// records them as key's dependents. Those are exactly the memo cells
// computed while reaching this reentrant failure -- the ones whose answer
// could change once key's seed grows (spec.md §4.4 step 1, §9).
func (ctx *Context) scheduleEviction(key CacheKey) {
	dependents := ctx.evictionSchedule[key]
	for i := len(ctx.callPath) - 1; i >= 0; i-- {
		ancestor := ctx.callPath[i]
		if ancestor == key {
			break
		}
		dependents = append(dependents, ancestor)
	}
	ctx.evictionSchedule[key] = dependents
}

// executeEviction recursively removes every memo entry scheduled against
// key (and transitively, entries scheduled against those dependents) from
// the cache, without clearing the schedule itself. Called once per growth
// iteration, before re-evaluating the raw body (spec.md §4.4 step 4.1).
func (ctx *Context) executeEviction(key CacheKey) {
	dependents, ok := ctx.evictionSchedule[key]
	if !ok {
		return
	}
	for _, dep := range dependents {
		ctx.executeEviction(dep)
		ctx.cache.delete(dep)
	}
}

// clearEvictionSchedule recursively discards key's eviction schedule (and
// transitively, its dependents' schedules) once the recursion head at key
// has finished growing (spec.md §4.4 step 4).
func (ctx *Context) clearEvictionSchedule(key CacheKey) {
	dependents, ok := ctx.evictionSchedule[key]
	if !ok {
		return
	}
	delete(ctx.evictionSchedule, key)
	for _, dep := range dependents {
		ctx.clearEvictionSchedule(dep)
	}
}
