package rewrite

import (
	"github.com/ralite/ralite/sql/expression"
)

// maxFixpointIterations bounds the rewrite loop; every rule strictly
// shrinks a well-founded measure, so in practice this is never reached.
const maxFixpointIterations = 1000

// rewritePredicate runs stepPredicate to a fixpoint: repeated bottom-up
// passes until a pass changes nothing.
func rewritePredicate(e expression.Expression) (expression.Expression, error) {
	cur := e
	for i := 0; i < maxFixpointIterations; i++ {
		next, changed, err := transformExpr(cur, stepPredicate)
		if err != nil {
			return nil, err
		}
		if !changed {
			return next, nil
		}
		cur = next
	}
	return cur, nil
}

// stepPredicate applies one layer of the predicate-level rules to a
// single node, assuming its children have already been simplified by the
// bottom-up walk in transformExpr. It is
// intentionally one rule-application per call; fixpoint looping happens
// in rewritePredicate.
func stepPredicate(e expression.Expression) (expression.Expression, bool, error) {
	switch n := e.(type) {
	case *expression.Equals:
		// Equal(c, c) -> T, restricted to resolved column
		// references to avoid declaring non-deterministic calls tautological.
		if lf, ok := n.Left.(*expression.GetField); ok {
			if rf, ok2 := n.Right.(*expression.GetField); ok2 && lf.Index == rf.Index {
				return expression.BoolTrue(), true, nil
			}
		}
		return n, false, nil

	case *expression.GreaterThan:
		// Canonical orientation: Gt(a,b) -> Lt(b,a).
		return expression.NewLessThan(n.Right, n.Left), true, nil

	case *expression.GreaterThanOrEqual:
		return expression.NewLessThanOrEqual(n.Right, n.Left), true, nil

	case *expression.Not:
		// ¬(¬a) -> a.
		if inner, ok := n.Child.(*expression.Not); ok {
			return inner.Child, true, nil
		}
		return n, false, nil

	case *expression.In:
		list := n.List
		if len(list.Items) == 0 {
			// In(x, List()) -> F.
			return expression.BoolFalse(), true, nil
		}
		// In(x, List(v, s…)) -> Or(Equal(x,v), In(x, List(s…))).
		head := list.Items[0]
		rest := expression.NewTuple(list.Items[1:]...)
		return expression.NewOr(
			expression.NewEquals(n.Left, head),
			expression.NewIn(n.Left, rest),
		), true, nil

	case *expression.And:
		return stepAnd(n)

	case *expression.Or:
		return stepOr(n)
	}
	return e, false, nil
}

func stepAnd(n *expression.And) (expression.Expression, bool, error) {
	args := n.Args
	changed := false

	// ∧(F, …) -> F.
	for _, a := range args {
		if isFalse(a) {
			return expression.BoolFalse(), true, nil
		}
	}

	// ∧(T, p…) -> ∧(p…).
	filtered := args[:0:0]
	for _, a := range args {
		if isTrue(a) {
			changed = true
			continue
		}
		filtered = append(filtered, a)
	}
	args = filtered

	ordered := canonicalOrder(append([]expression.Expression(nil), args...))
	deduped, dedChanged := dedupeAdjacent(ordered)
	if dedChanged {
		changed = true
	}
	args = deduped

	// Redundant comparator fusion among sibling LessThan terms.
	fused, fuseChanged := fuseComparators(args)
	if fuseChanged {
		changed = true
	}
	args = fused

	if !changed {
		return n, false, nil
	}
	return expression.NewAnd(args...), true, nil
}

func stepOr(n *expression.Or) (expression.Expression, bool, error) {
	args := n.Args
	changed := false

	// ∨(T, p…) -> T.
	for _, a := range args {
		if isTrue(a) {
			return expression.BoolTrue(), true, nil
		}
	}

	// ∨(F, p…) -> ∨(p…).
	filtered := args[:0:0]
	for _, a := range args {
		if isFalse(a) {
			changed = true
			continue
		}
		filtered = append(filtered, a)
	}
	args = filtered

	ordered := canonicalOrder(append([]expression.Expression(nil), args...))
	deduped, dedChanged := dedupeAdjacent(ordered)
	if dedChanged {
		changed = true
	}
	args = deduped

	if !changed {
		return n, false, nil
	}
	return expression.NewOr(args...), true, nil
}

// fuseComparators fuses redundant bounds: among And's sibling LessThan terms
// sharing one literal and one common non-literal side, keep only the
// tightest bound. x < N1 and x < N2 fuse to x < min(N1,N2); N1 < x and
// N2 < x fuse to max(N1,N2) < x.
func fuseComparators(args []expression.Expression) ([]expression.Expression, bool) {
	type bound struct {
		idx     int
		literal float64
	}
	tightestRight := map[string]bound{} // x < N, keep min N
	tightestLeft := map[string]bound{}  // N < x, keep max N

	drop := make(map[int]bool)
	changed := false

	for i, a := range args {
		lt, ok := a.(*expression.LessThan)
		if !ok {
			continue
		}
		if num, ok := numberLiteral(lt.Right); ok {
			key := lt.Left.String()
			if b, seen := tightestRight[key]; seen {
				if num < b.literal {
					drop[b.idx] = true
					tightestRight[key] = bound{idx: i, literal: num}
				} else {
					drop[i] = true
				}
				changed = true
			} else {
				tightestRight[key] = bound{idx: i, literal: num}
			}
			continue
		}
		if num, ok := numberLiteral(lt.Left); ok {
			key := lt.Right.String()
			if b, seen := tightestLeft[key]; seen {
				if num > b.literal {
					drop[b.idx] = true
					tightestLeft[key] = bound{idx: i, literal: num}
				} else {
					drop[i] = true
				}
				changed = true
			} else {
				tightestLeft[key] = bound{idx: i, literal: num}
			}
		}
	}

	if !changed {
		return args, false
	}
	out := make([]expression.Expression, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out, true
}
