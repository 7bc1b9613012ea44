package sql

import "fmt"

// Kind tags the scalar type carried by a Value.
type Kind uint8

const (
	// KindNull is the SQL NULL value. There is exactly one Null value,
	// and it compares unequal to everything, including itself, under
	// three-valued logic.
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindBool:
		return "BOOL"
	case KindInt64:
		return "INT64"
	case KindFloat64:
		return "FLOAT64"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged scalar. It is the unit of data flowing through every
// Row in the engine. Values are immutable.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Null is the singleton SQL NULL value.
var Null = Value{kind: KindNull}

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt64 returns an Int64 value.
func NewInt64(i int64) Value { return Value{kind: KindInt64, i: i} }

// NewFloat64 returns a Float64 value.
func NewFloat64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// NewText returns a Text value.
func NewText(s string) Value { return Value{kind: KindText, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int64 returns the integer payload. Only meaningful when Kind() == KindInt64.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload. Only meaningful when Kind() == KindFloat64.
func (v Value) Float64() float64 { return v.f }

// Text returns the string payload. Only meaningful when Kind() == KindText.
func (v Value) Text() string { return v.s }

// AsFloat64 promotes a numeric value (Int64 or Float64) to float64. The
// second return is false for non-numeric kinds.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindInt64:
		return float64(v.i), true
	case KindFloat64:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt64:
		return fmt.Sprintf("%d", v.i)
	case KindFloat64:
		return fmt.Sprintf("%v", v.f)
	case KindText:
		return v.s
	default:
		return "?"
	}
}

// Equal is structural equality: used for Distinct/Union row deduplication
// and as the tie-break in CompareTotal. Null equals Null here (this is NOT
// the SQL `=` operator, which follows three-valued logic instead -- see
// sql/expression.Equals).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if n, ok := v.AsFloat64(); ok {
			if m, ok2 := other.AsFloat64(); ok2 {
				return n == m
			}
		}
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt64:
		return v.i == other.i
	case KindFloat64:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	default:
		return false
	}
}

// CompareTotal imposes the total order required by Sort/OrderBy/merge-join:
// Null < Bool < Int64 < Float64 < Text, then natural ordering within kind.
func (v Value) CompareTotal(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b == other.b {
			return 0
		}
		if !v.b {
			return -1
		}
		return 1
	case KindInt64:
		switch {
		case v.i < other.i:
			return -1
		case v.i > other.i:
			return 1
		default:
			return 0
		}
	case KindFloat64:
		return compareFloat64(v.f, other.f)
	case KindText:
		switch {
		case v.s < other.s:
			return -1
		case v.s > other.s:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareSQL compares two values under SQL semantics: if either operand is
// Null the comparison is unknown (ok=false). Numeric kinds are promoted to
// float64 for comparison; Bool/Text compare only against their own kind.
func (v Value) CompareSQL(other Value) (cmp int, ok bool) {
	if v.IsNull() || other.IsNull() {
		return 0, false
	}
	if n, nok := v.AsFloat64(); nok {
		if m, mok := other.AsFloat64(); mok {
			return compareFloat64(n, m), true
		}
		return 0, false
	}
	if v.kind != other.kind {
		return 0, false
	}
	return v.CompareTotal(other), true
}
