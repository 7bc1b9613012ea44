package expression

import "github.com/ralite/ralite/sql"

type binaryComparison struct {
	Left, Right Expression
}

func (b *binaryComparison) Children() []Expression { return []Expression{b.Left, b.Right} }

func evalPair(ctx *sql.Context, row sql.Row, b *binaryComparison) (l, r sql.Value, err error) {
	l, err = b.Left.Eval(ctx, row)
	if err != nil {
		return
	}
	r, err = b.Right.Eval(ctx, row)
	return
}

// Equals is "=": commutative, not associative.
// The self-equality rewrite (Equal(c,c) -> T) relies on this node's Left/Right
// being structurally comparable by the rewriter, not on this Eval.
type Equals struct{ binaryComparison }

func NewEquals(left, right Expression) *Equals {
	return &Equals{binaryComparison{left, right}}
}

func (e *Equals) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	if l.IsNull() || r.IsNull() {
		return sql.Null, nil
	}
	return sql.NewBool(l.Equal(r)), nil
}

func (e *Equals) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewEquals(children[0], children[1]), nil
}

func (e *Equals) Commutative() bool { return true }
func (e *Equals) Associative() bool { return false }
func (e *Equals) String() string    { return e.Left.String() + " = " + e.Right.String() }

// NotEquals is "!=".
type NotEquals struct{ binaryComparison }

func NewNotEquals(left, right Expression) *NotEquals {
	return &NotEquals{binaryComparison{left, right}}
}

func (e *NotEquals) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	if l.IsNull() || r.IsNull() {
		return sql.Null, nil
	}
	return sql.NewBool(!l.Equal(r)), nil
}

func (e *NotEquals) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewNotEquals(children[0], children[1]), nil
}

func (e *NotEquals) Commutative() bool { return true }
func (e *NotEquals) Associative() bool { return false }
func (e *NotEquals) String() string    { return e.Left.String() + " != " + e.Right.String() }

// LessThan is "<", not commutative.
type LessThan struct{ binaryComparison }

func NewLessThan(left, right Expression) *LessThan {
	return &LessThan{binaryComparison{left, right}}
}

func (e *LessThan) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	cmp, ok := l.CompareSQL(r)
	if !ok {
		return sql.Null, nil
	}
	return sql.NewBool(cmp < 0), nil
}

func (e *LessThan) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewLessThan(children[0], children[1]), nil
}

func (e *LessThan) Commutative() bool { return false }
func (e *LessThan) Associative() bool { return false }
func (e *LessThan) String() string    { return e.Left.String() + " < " + e.Right.String() }

// GreaterThan is ">". The rewriter canonicalizes Gt(a,b) into
// Lt(b,a), so only LessThan needs a lowering rule, but GreaterThan still
// needs to exist as the term the planbuilder/parser produces directly.
type GreaterThan struct{ binaryComparison }

func NewGreaterThan(left, right Expression) *GreaterThan {
	return &GreaterThan{binaryComparison{left, right}}
}

func (e *GreaterThan) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	cmp, ok := l.CompareSQL(r)
	if !ok {
		return sql.Null, nil
	}
	return sql.NewBool(cmp > 0), nil
}

func (e *GreaterThan) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewGreaterThan(children[0], children[1]), nil
}

func (e *GreaterThan) Commutative() bool { return false }
func (e *GreaterThan) Associative() bool { return false }
func (e *GreaterThan) String() string    { return e.Left.String() + " > " + e.Right.String() }

// LessThanOrEqual is "<=".
type LessThanOrEqual struct{ binaryComparison }

func NewLessThanOrEqual(left, right Expression) *LessThanOrEqual {
	return &LessThanOrEqual{binaryComparison{left, right}}
}

func (e *LessThanOrEqual) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	cmp, ok := l.CompareSQL(r)
	if !ok {
		return sql.Null, nil
	}
	return sql.NewBool(cmp <= 0), nil
}

func (e *LessThanOrEqual) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewLessThanOrEqual(children[0], children[1]), nil
}

func (e *LessThanOrEqual) Commutative() bool { return false }
func (e *LessThanOrEqual) Associative() bool { return false }
func (e *LessThanOrEqual) String() string    { return e.Left.String() + " <= " + e.Right.String() }

// GreaterThanOrEqual is ">=".
type GreaterThanOrEqual struct{ binaryComparison }

func NewGreaterThanOrEqual(left, right Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{binaryComparison{left, right}}
}

func (e *GreaterThanOrEqual) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, r, err := evalPair(ctx, row, &e.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	cmp, ok := l.CompareSQL(r)
	if !ok {
		return sql.Null, nil
	}
	return sql.NewBool(cmp >= 0), nil
}

func (e *GreaterThanOrEqual) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewGreaterThanOrEqual(children[0], children[1]), nil
}

func (e *GreaterThanOrEqual) Commutative() bool { return false }
func (e *GreaterThanOrEqual) Associative() bool { return false }
func (e *GreaterThanOrEqual) String() string    { return e.Left.String() + " >= " + e.Right.String() }
