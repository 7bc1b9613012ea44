package rewrite

import (
	"github.com/ralite/ralite/sql/expression"
	"github.com/ralite/ralite/sql/plan"
)

// stepRelation applies one layer of the relational-level rules to a
// single node, assuming its children have already been simplified. The
// self-cross collapse (Cross(a,a,…) -> Cross(a,…)) is intentionally never
// applied -- it breaks self-joins
// unless relation instances carry provenance -- so no case for it exists
// here.
func stepRelation(n plan.Node) (plan.Node, bool, error) {
	switch node := n.(type) {
	case *plan.Filter:
		return stepFilter(node)
	case *plan.Cross:
		return stepCross(node)
	case *plan.Union:
		return stepUnion(node)
	case *plan.Intersection:
		return stepIntersection(node)
	}
	return n, false, nil
}

func stepFilter(f *plan.Filter) (plan.Node, bool, error) {
	pred := f.Predicate
	changed := false
	if pred != nil {
		rewritten, err := rewritePredicate(pred)
		if err != nil {
			return nil, false, err
		}
		if rewritten.String() != pred.String() {
			pred = rewritten
			changed = true
		}
	}

	// σ(R, T) -> R.
	if isTrue(pred) {
		return f.Child, true, nil
	}

	// σ(R, ∧()) -> R (empty predicate).
	if and, ok := pred.(*expression.And); ok && len(and.Args) == 0 {
		return f.Child, true, nil
	}

	// A Select whose predicate collapsed to F becomes the
	// empty relation directly (the typed equivalent of substituting the
	// bare constant F for ⊥ in an untyped term universe).
	if isFalse(pred) {
		return plan.NewEmptySet(), true, nil
	}

	// Selection push-down past cross.
	if cross, ok := f.Child.(*plan.Cross); ok {
		if pushed, ok := pushSelectPastCross(cross, pred); ok {
			return pushed, true, nil
		}
	}

	// Equi-join introduction (and its multi-way extension,
	// handled by the fixpoint re-running this rule after a join has
	// already replaced one pair of Cross operands).
	if cross, ok := f.Child.(*plan.Cross); ok {
		if joined, remainingPred, ok := introduceEquiJoin(cross, pred); ok {
			return plan.NewFilter(remainingPred, joined), true, nil
		}
	}

	if changed {
		return f.WithPredicate(pred), true, nil
	}
	return f, false, nil
}

func stepCross(c *plan.Cross) (plan.Node, bool, error) {
	changed := false

	// Flatten nested Cross (associativity).
	var flat []plan.Node
	for _, o := range c.Operands {
		if inner, ok := o.(*plan.Cross); ok {
			flat = append(flat, inner.Operands...)
			changed = true
			continue
		}
		flat = append(flat, o)
	}

	// 𝕌 × p… -> p… (drop UniverseSet operands).
	var withoutUniverse []plan.Node
	for _, o := range flat {
		if _, ok := o.(*plan.UniverseSet); ok {
			changed = true
			continue
		}
		withoutUniverse = append(withoutUniverse, o)
	}
	flat = withoutUniverse

	if len(flat) == 0 {
		return plan.NewUniverseSet(), true, nil
	}
	if len(flat) == 1 {
		return flat[0], true, nil
	}
	if !changed {
		return c, false, nil
	}
	return plan.NewCross(flat...), true, nil
}

func stepUnion(u *plan.Union) (plan.Node, bool, error) {
	changed := false

	var flat []plan.Node
	for _, o := range u.Operands {
		if inner, ok := o.(*plan.Union); ok {
			flat = append(flat, inner.Operands...)
			changed = true
			continue
		}
		if _, ok := o.(*plan.EmptySet); ok {
			// Union(⊥, p…) -> Union(p…).
			changed = true
			continue
		}
		flat = append(flat, o)
	}

	// Union(a, σ(a, _), s…) -> Union(a, s…).
	flat, droppedSubset := dropUnionSubsetFilters(flat)
	if droppedSubset {
		changed = true
	}

	// Dedupe structurally identical operands.
	ordered := canonicalOrder(append([]plan.Node(nil), flat...))
	deduped, dedChanged := dedupeAdjacent(ordered)
	if dedChanged {
		changed = true
	}
	flat = deduped

	// Union(σ(a,b), σ(a,c)) -> σ(a, ∨(b,c)) when exactly those two remain.
	if len(flat) == 2 {
		if merged, ok := mergeUnionFilters(flat[0], flat[1]); ok {
			return merged, true, nil
		}
	}

	if len(flat) == 1 {
		return flat[0], true, nil
	}
	if !changed {
		return u, false, nil
	}
	return plan.NewUnion(flat...), true, nil
}

func stepIntersection(in *plan.Intersection) (plan.Node, bool, error) {
	changed := false

	var flat []plan.Node
	for _, o := range in.Operands {
		if inner, ok := o.(*plan.Intersection); ok {
			flat = append(flat, inner.Operands...)
			changed = true
			continue
		}
		flat = append(flat, o)
	}

	// Intersection(⊥, …) -> ⊥.
	for _, o := range flat {
		if _, ok := o.(*plan.EmptySet); ok {
			return plan.NewEmptySet(), true, nil
		}
	}

	// Intersection(𝕌, a, s…) -> Intersection(a, s…),
	// treating UniverseSet as intersection's identity element, the same
	// role it plays for Cross.
	var withoutUniverse []plan.Node
	for _, o := range flat {
		if _, ok := o.(*plan.UniverseSet); ok {
			changed = true
			continue
		}
		withoutUniverse = append(withoutUniverse, o)
	}
	flat = withoutUniverse

	// Intersection(a, σ(a, p), s…) -> Intersection(σ(a, p), s…).
	flat, droppedBase := dropIntersectionBareWhenFiltered(flat)
	if droppedBase {
		changed = true
	}

	// Dedupe structurally identical operands.
	ordered := canonicalOrder(append([]plan.Node(nil), flat...))
	deduped, dedChanged := dedupeAdjacent(ordered)
	if dedChanged {
		changed = true
	}
	flat = deduped

	// Merge two Filter-over-same-base operands via And.
	flat, mergeChanged := mergeIntersectionFilters(flat)
	if mergeChanged {
		changed = true
	}

	if len(flat) == 0 {
		return plan.NewUniverseSet(), true, nil
	}
	if len(flat) == 1 {
		return flat[0], true, nil
	}
	if !changed {
		return in, false, nil
	}
	return plan.NewIntersection(flat...), true, nil
}

func dropUnionSubsetFilters(operands []plan.Node) ([]plan.Node, bool) {
	bases := map[string]bool{}
	for _, o := range operands {
		bases[o.String()] = true
	}
	changed := false
	out := make([]plan.Node, 0, len(operands))
	for _, o := range operands {
		if f, ok := o.(*plan.Filter); ok && bases[f.Child.String()] {
			changed = true
			continue
		}
		out = append(out, o)
	}
	if !changed {
		return operands, false
	}
	return out, true
}

func dropIntersectionBareWhenFiltered(operands []plan.Node) ([]plan.Node, bool) {
	filteredBases := map[string]bool{}
	for _, o := range operands {
		if f, ok := o.(*plan.Filter); ok {
			filteredBases[f.Child.String()] = true
		}
	}
	changed := false
	out := make([]plan.Node, 0, len(operands))
	for _, o := range operands {
		if filteredBases[o.String()] {
			if _, isFilter := o.(*plan.Filter); !isFilter {
				changed = true
				continue
			}
		}
		out = append(out, o)
	}
	if !changed {
		return operands, false
	}
	return out, true
}

func mergeUnionFilters(a, b plan.Node) (plan.Node, bool) {
	fa, ok := a.(*plan.Filter)
	if !ok {
		return nil, false
	}
	fb, ok := b.(*plan.Filter)
	if !ok {
		return nil, false
	}
	if fa.Child.String() != fb.Child.String() {
		return nil, false
	}
	return plan.NewFilter(expression.NewOr(fa.Predicate, fb.Predicate), fa.Child), true
}

func mergeIntersectionFilters(operands []plan.Node) ([]plan.Node, bool) {
	byBase := map[string]int{}
	out := append([]plan.Node(nil), operands...)
	changed := false
	for i := 0; i < len(out); i++ {
		f, ok := out[i].(*plan.Filter)
		if !ok {
			continue
		}
		base := f.Child.String()
		if j, seen := byBase[base]; seen {
			merged := plan.NewFilter(expression.NewAnd(out[j].(*plan.Filter).Predicate, f.Predicate), f.Child)
			out[j] = merged
			out = append(out[:i], out[i+1:]...)
			i--
			changed = true
			continue
		}
		byBase[base] = i
	}
	return out, changed
}

// schemaOwner returns the index of the Cross operand that produced the
// column at the given absolute row index, by walking cumulative schema widths.
func schemaOwner(operands []plan.Node, index int) int {
	offset := 0
	for i, o := range operands {
		width := len(o.Schema())
		if index < offset+width {
			return i
		}
		offset += width
	}
	return -1
}

// pushSelectPastCross pushes a selection past a cross: when the predicate only
// references columns owned by a single Cross operand, push the Filter
// down onto just that operand.
func pushSelectPastCross(cross *plan.Cross, pred expression.Expression) (plan.Node, bool) {
	cols := expression.GetFieldsUsed(pred)
	if len(cols) == 0 {
		return nil, false
	}
	owner := schemaOwner(cross.Operands, cols[0].Index)
	if owner == -1 {
		return nil, false
	}
	for _, c := range cols[1:] {
		if schemaOwner(cross.Operands, c.Index) != owner {
			return nil, false
		}
	}

	offset := 0
	for i := 0; i < owner; i++ {
		offset += len(cross.Operands[i].Schema())
	}
	shifted, err := shiftGetFields(pred, -offset)
	if err != nil {
		return nil, false
	}

	newOperands := append([]plan.Node(nil), cross.Operands...)
	newOperands[owner] = plan.NewFilter(shifted, newOperands[owner])
	return plan.NewCross(newOperands...), true
}

func shiftGetFields(e expression.Expression, delta int) (expression.Expression, error) {
	result, _, err := transformExpr(e, func(ex expression.Expression) (expression.Expression, bool, error) {
		if gf, ok := ex.(*expression.GetField); ok {
			return expression.NewGetField(gf.Index+delta, gf.Type, gf.Name), true, nil
		}
		return ex, false, nil
	})
	return result, err
}

// introduceEquiJoin finds an Equal predicate in a
// top-level conjunction whose two sides are owned by two distinct Cross
// operands and restructures the Cross/Select pair into an InnerJoin,
// leaving any remaining conjuncts in place. Repeated application (driven
// by the outer fixpoint) folds additional Cross operands into the same
// join chain, the multi-way extension of the same rewrite.
func introduceEquiJoin(cross *plan.Cross, pred expression.Expression) (plan.Node, expression.Expression, bool) {
	conjuncts := conjunctsOf(pred)
	for i, conj := range conjuncts {
		eq, ok := conj.(*expression.Equals)
		if !ok {
			continue
		}
		lf, ok := eq.Left.(*expression.GetField)
		if !ok {
			continue
		}
		rf, ok := eq.Right.(*expression.GetField)
		if !ok {
			continue
		}
		lo := schemaOwner(cross.Operands, lf.Index)
		ro := schemaOwner(cross.Operands, rf.Index)
		if lo == -1 || ro == -1 || lo == ro {
			continue
		}

		loOffset, roOffset := 0, 0
		for j := 0; j < lo; j++ {
			loOffset += len(cross.Operands[j].Schema())
		}
		for j := 0; j < ro; j++ {
			roOffset += len(cross.Operands[j].Schema())
		}

		leftRel, rightRel := cross.Operands[lo], cross.Operands[ro]
		leftKey := expression.NewGetField(lf.Index-loOffset, lf.Type, lf.Name)
		rightKey := expression.NewGetField(rf.Index-roOffset, rf.Type, rf.Name)
		join := plan.NewInnerJoin(leftRel, leftKey, rightRel, rightKey)

		var remainingOperands []plan.Node
		for j, o := range cross.Operands {
			if j == lo || j == ro {
				continue
			}
			remainingOperands = append(remainingOperands, o)
		}

		var result plan.Node = join
		if len(remainingOperands) > 0 {
			result = plan.NewCross(append([]plan.Node{join}, remainingOperands...)...)
		}

		remaining := append(append([]expression.Expression(nil), conjuncts[:i]...), conjuncts[i+1:]...)
		return result, expression.NewAnd(remaining...), true
	}
	return nil, nil, false
}

func conjunctsOf(pred expression.Expression) []expression.Expression {
	if and, ok := pred.(*expression.And); ok {
		return and.Args
	}
	return []expression.Expression{pred}
}
