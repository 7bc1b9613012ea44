package rewrite

import (
	"fmt"
	"sort"
)

// canonicalOrder normalizes the operands of a commutative operator into a
// deterministic order so commutative matching reduces to structural
// matching. Sorting by string form is cheap and stable across runs
// since node/expression trees are immutable.
func canonicalOrder[T fmt.Stringer](items []T) []T {
	if len(items) < 2 {
		return items
	}
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// dedupeAdjacent drops structurally-equal neighbors from a canonically
// ordered slice, the "a, a, s… -> a, s…" shape shared by And/Or/Union/
// Intersection dedupe.
func dedupeAdjacent[T fmt.Stringer](items []T) ([]T, bool) {
	if len(items) < 2 {
		return items, false
	}
	out := make([]T, 0, len(items))
	out = append(out, items[0])
	changed := false
	for _, it := range items[1:] {
		if it.String() == out[len(out)-1].String() {
			changed = true
			continue
		}
		out = append(out, it)
	}
	return out, changed
}
