package sql

// Row is an ordered, immutable sequence of Values whose length equals the
// column count of the producing stage.
type Row []Value

// NewRow builds a Row from raw Go values, converting each to a Value. It is
// primarily used by tests and by table providers constructing literal rows.
func NewRow(vals ...interface{}) Row {
	row := make(Row, len(vals))
	for i, v := range vals {
		row[i] = toValue(v)
	}
	return row
}

func toValue(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return NewBool(t)
	case int:
		return NewInt64(int64(t))
	case int64:
		return NewInt64(t)
	case int32:
		return NewInt64(int64(t))
	case float64:
		return NewFloat64(t)
	case float32:
		return NewFloat64(float64(t))
	case string:
		return NewText(t)
	default:
		panic("sql: unsupported literal type")
	}
}

// Append returns a new Row equal to the concatenation of r and other. This
// is how composite rows (the output of a join) are built: the
// implementation here materializes the concatenation, but callers never
// observe the difference from a "virtual" flat row.
func (r Row) Append(other Row) Row {
	out := make(Row, 0, len(r)+len(other))
	out = append(out, r...)
	out = append(out, other...)
	return out
}

// Equal performs structural, per-column comparison via Value.Equal.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of the row.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}
