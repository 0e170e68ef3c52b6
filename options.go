package packrat

// Option configures a Context at construction time. It follows the same
// shape as the teacher's generated-parser options
// (32bitkid-pigeon/vm/static_code.go: Debug, Memoize, Recover): applying
// an Option returns an Option that would undo it, so options can be
// captured and restored.
type Option func(*Context) Option

// WithLogger installs l as the Context's trace/debug/info sink. The zero
// value (no WithLogger option) uses NopLogger, so logging costs nothing
// when not requested.
func WithLogger(l Logger) Option {
	return func(ctx *Context) Option {
		old := ctx.logger
		ctx.logger = l
		return WithLogger(old)
	}
}

// WithMaxDepth bounds the depth of the in-flight call path. Exceeding it
// produces a ParseError instead of risking a native stack overflow on
// pathologically deep grammars or inputs (spec.md §9, SPEC_FULL.md §2.2).
// A value of 0 (the default) means unbounded.
func WithMaxDepth(n int) Option {
	return func(ctx *Context) Option {
		old := ctx.maxDepth
		ctx.maxDepth = n
		return WithMaxDepth(old)
	}
}

func applyOptions(ctx *Context, opts []Option) {
	for _, opt := range opts {
		opt(ctx)
	}
}
