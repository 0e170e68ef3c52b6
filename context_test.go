package packrat

import "testing"

func TestScheduleEvictionCollectsAncestorsStrictlyAfterKey(t *testing.T) {
	ctx := NewContext("xyz")

	head := CacheKey{ID: 1, Pos: 0}
	mid := CacheKey{ID: 2, Pos: 0}
	inner := CacheKey{ID: 3, Pos: 0}

	ctx.pushCallPath(head)
	ctx.pushCallPath(mid)
	ctx.pushCallPath(inner)

	// Reentry at head: everything after head in call_path (mid, inner)
	// becomes a dependent of head, in back-to-front discovery order.
	ctx.scheduleEviction(head)

	got := ctx.evictionSchedule[head]
	want := []CacheKey{inner, mid}
	if len(got) != len(want) {
		t.Fatalf("dependents = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dependents[%d] = %v; want %v", i, got[i], want[i])
		}
	}

	ctx.popCallPath(inner)
	ctx.popCallPath(mid)
	ctx.popCallPath(head)
}

func TestExecuteEvictionRemovesDependentsTransitively(t *testing.T) {
	ctx := NewContext("xyz")

	head := CacheKey{ID: 1, Pos: 0}
	dep := CacheKey{ID: 2, Pos: 0}
	transitiveDep := CacheKey{ID: 3, Pos: 0}

	ctx.cache.set(dep, &cacheEntry{state: cacheResolved, value: result[int]{val: 1}})
	ctx.cache.set(transitiveDep, &cacheEntry{state: cacheResolved, value: result[int]{val: 2}})

	ctx.evictionSchedule[head] = []CacheKey{dep}
	ctx.evictionSchedule[dep] = []CacheKey{transitiveDep}

	ctx.executeEviction(head)

	if _, ok := ctx.cache.get(dep); ok {
		t.Fatal("dep should have been evicted")
	}
	if _, ok := ctx.cache.get(transitiveDep); ok {
		t.Fatal("transitiveDep should have been evicted transitively")
	}

	// executeEviction does not clear the schedule itself.
	if len(ctx.evictionSchedule[head]) == 0 {
		t.Fatal("executeEviction should not clear the schedule")
	}
}

func TestClearEvictionScheduleIsRecursive(t *testing.T) {
	ctx := NewContext("xyz")

	head := CacheKey{ID: 1, Pos: 0}
	dep := CacheKey{ID: 2, Pos: 0}

	ctx.evictionSchedule[head] = []CacheKey{dep}
	ctx.evictionSchedule[dep] = []CacheKey{{ID: 3, Pos: 0}}

	ctx.clearEvictionSchedule(head)

	if _, ok := ctx.evictionSchedule[head]; ok {
		t.Fatal("head schedule should be cleared")
	}
	if _, ok := ctx.evictionSchedule[dep]; ok {
		t.Fatal("dep schedule should be cleared transitively")
	}
}

func TestLRStackPushIsIdempotentAtTop(t *testing.T) {
	ctx := NewContext("xyz")
	k := CacheKey{ID: 1, Pos: 0}

	ctx.pushLR(k)
	ctx.pushLR(k)
	if len(ctx.lrStack) != 1 {
		t.Fatalf("len(lrStack) = %d; want 1 after idempotent push", len(ctx.lrStack))
	}
	ctx.popLR(k)
	if len(ctx.lrStack) != 0 {
		t.Fatalf("lrStack should be empty after pop")
	}
}
