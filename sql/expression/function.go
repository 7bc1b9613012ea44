package expression

import (
	"math"
	"strings"

	"github.com/ralite/ralite/sql"
)

// FunctionImpl is the signature a registered scalar function implements.
type FunctionImpl func(ctx *sql.Context, args []sql.Value) (sql.Value, error)

var functionRegistry = map[string]FunctionImpl{
	"length": fnLength,
	"lcase":  fnLcase,
	"abs":    fnAbs,
	"power":  fnPower,
}

// RegisterFunction adds or overrides a scalar function by name. Names are
// matched case-insensitively, mirroring SQL identifier rules.
func RegisterFunction(name string, fn FunctionImpl) {
	functionRegistry[strings.ToLower(name)] = fn
}

// Function is an opaque call term. No rule of the rewriter
// matches a Function node itself -- a Function's meaning is only known to
// its implementation -- but the rewriter, Resolve and GetFieldsUsed still
// descend into its Args like any other children.
type Function struct {
	Name string
	Args []Expression
}

// NewFunction builds a call to a registered function.
func NewFunction(name string, args ...Expression) *Function {
	return &Function{Name: name, Args: args}
}

func (f *Function) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	impl, ok := functionRegistry[strings.ToLower(f.Name)]
	if !ok {
		return sql.Null, errUnknownFunction.New(f.Name)
	}
	args := make([]sql.Value, len(f.Args))
	for i, a := range f.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		args[i] = v
	}
	return impl(ctx, args)
}

func (f *Function) Children() []Expression { return f.Args }

func (f *Function) WithChildren(children ...Expression) (Expression, error) {
	return &Function{Name: f.Name, Args: children}, nil
}

func (f *Function) Commutative() bool { return false }
func (f *Function) Associative() bool { return false }

func (f *Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

func fnLength(ctx *sql.Context, args []sql.Value) (sql.Value, error) {
	if len(args) != 1 {
		return sql.Null, errWrongArity.New("length", 1, len(args))
	}
	if args[0].IsNull() {
		return sql.Null, nil
	}
	return sql.NewInt64(int64(len(args[0].Text()))), nil
}

func fnLcase(ctx *sql.Context, args []sql.Value) (sql.Value, error) {
	if len(args) != 1 {
		return sql.Null, errWrongArity.New("lcase", 1, len(args))
	}
	if args[0].IsNull() {
		return sql.Null, nil
	}
	return sql.NewText(strings.ToLower(args[0].Text())), nil
}

func fnAbs(ctx *sql.Context, args []sql.Value) (sql.Value, error) {
	if len(args) != 1 {
		return sql.Null, errWrongArity.New("abs", 1, len(args))
	}
	if args[0].IsNull() {
		return sql.Null, nil
	}
	n, ok := args[0].AsFloat64()
	if !ok {
		return sql.Null, errNotNumeric.New("abs", args[0].Kind())
	}
	if args[0].Kind() == sql.KindInt64 {
		i := args[0].Int64()
		if i < 0 {
			i = -i
		}
		return sql.NewInt64(i), nil
	}
	return sql.NewFloat64(math.Abs(n)), nil
}

func fnPower(ctx *sql.Context, args []sql.Value) (sql.Value, error) {
	if len(args) != 2 {
		return sql.Null, errWrongArity.New("power", 2, len(args))
	}
	if args[0].IsNull() || args[1].IsNull() {
		return sql.Null, nil
	}
	x, ok := args[0].AsFloat64()
	if !ok {
		return sql.Null, errNotNumeric.New("power", args[0].Kind())
	}
	y, ok := args[1].AsFloat64()
	if !ok {
		return sql.Null, errNotNumeric.New("power", args[1].Kind())
	}
	return sql.NewFloat64(math.Pow(x, y)), nil
}
