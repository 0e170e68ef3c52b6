package packrat

import "testing"

// TestCallPathAndLRStackRestoredOnExit is spec.md §8 invariant 1: parse
// leaves call_path and lr_stack exactly as it found them.
func TestCallPathAndLRStackRestoredOnExit(t *testing.T) {
	ctx := NewContext("abc")
	a := Char('a')

	if _, _, err := a.Parse(0, ctx); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if len(ctx.callPath) != 0 {
		t.Fatalf("call_path leaked: %v", ctx.callPath)
	}
	if len(ctx.lrStack) != 0 {
		t.Fatalf("lr_stack leaked: %v", ctx.lrStack)
	}
}

// TestCacheAlwaysResolvedOnExit is spec.md §8 invariant 2.
func TestCacheAlwaysResolvedOnExit(t *testing.T) {
	ctx := NewContext("abc")
	a := Char('a')
	a.Parse(0, ctx)

	key := CacheKey{ID: a.ID(), Pos: 0}
	entry, ok := ctx.cache.get(key)
	if !ok {
		t.Fatal("expected a cache entry at (a.id, 0)")
	}
	if entry.state != cacheResolved {
		t.Fatalf("entry state = %v; want cacheResolved", entry.state)
	}
}

// TestMemoizationDeterminism is spec.md §8 invariant 4: two calls to parse
// for the same parser and position return identical results.
func TestMemoizationDeterminism(t *testing.T) {
	ctx := NewContext("abc")
	a := Char('a')

	pos1, val1, err1 := a.Parse(0, ctx)
	pos2, val2, err2 := a.Parse(0, ctx)

	if pos1 != pos2 || val1 != val2 || (err1 == nil) != (err2 == nil) {
		t.Fatalf("non-deterministic memoized result: (%v,%v,%v) vs (%v,%v,%v)", pos1, val1, err1, pos2, val2, err2)
	}
}

// TestSuccessNeverRegressesPosition is spec.md §8 invariant 3.
func TestSuccessNeverRegressesPosition(t *testing.T) {
	ctx := NewContext("abc")
	a := Char('a')
	pos, _, err := a.Parse(0, ctx)
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if pos < 0 || int(pos) > ctx.input.Len() {
		t.Fatalf("pos %d out of bounds [0, %d]", pos, ctx.input.Len())
	}
	if pos < 0 {
		t.Fatalf("pos should never be negative")
	}
}

// TestDirectLeftRecursionGrowsLeftAssociative is spec.md §8 scenario 6:
// E = E '+' int / int on "1+2+3" yields the left-associative ((1+2)+3).
func TestDirectLeftRecursionGrowsLeftAssociative(t *testing.T) {
	type node struct {
		isLit bool
		lit   int
		left  *node
		right *node
	}
	digit := Satisfy("digit", func(r rune) bool { return r >= '0' && r <= '9' })
	intP := Map(digit, func(r rune) *node { return &node{isLit: true, lit: int(r - '0')} })

	e := Lazy("E", func(e *Parser[*node]) *Parser[*node] {
		add := Map(And(Andl(e, Char('+')), intP), func(p Pair[*node, *node]) *node {
			return &node{left: p.Left, right: p.Right}
		})
		return add.Or(intP)
	})

	_, ast, err := e.Parse(0, NewContext("1+2+3"))
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}

	// Expect (((1)+(2))+(3)): top node's right is literal 3, left is a
	// node whose right is literal 2 and whose left is literal 1.
	if ast.isLit {
		t.Fatalf("top node should be a '+' node")
	}
	if !ast.right.isLit || ast.right.lit != 3 {
		t.Fatalf("top node's right should be literal 3, got %+v", ast.right)
	}
	mid := ast.left
	if mid == nil || mid.isLit {
		t.Fatalf("middle node should be a '+' node, got %+v", mid)
	}
	if !mid.left.isLit || mid.left.lit != 1 {
		t.Fatalf("innermost left should be literal 1, got %+v", mid.left)
	}
	if !mid.right.isLit || mid.right.lit != 2 {
		t.Fatalf("innermost right should be literal 2, got %+v", mid.right)
	}
}
