package sql

import "strings"

// Type is the logical type of a column. It is intentionally coarse: the
// relational algebra layer only needs enough type information to validate
// projections and describe results, not to drive storage decisions.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeBool
	TypeInt64
	TypeFloat64
	TypeText
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "BOOL"
	case TypeInt64:
		return "INT64"
	case TypeFloat64:
		return "FLOAT64"
	case TypeText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// TypeOfKind maps a Value Kind to its Schema Type. KindNull has no fixed
// type and maps to TypeUnknown.
func TypeOfKind(k Kind) Type {
	switch k {
	case KindBool:
		return TypeBool
	case KindInt64:
		return TypeInt64
	case KindFloat64:
		return TypeFloat64
	case KindText:
		return TypeText
	default:
		return TypeUnknown
	}
}

// Column is a Column Descriptor: an identifier, the table it
// originated from (empty for expression outputs), and a logical type.
type Column struct {
	Name   string
	Source string // origin_table; "" for expression outputs
	Type   Type
}

// Identifier returns the fully qualified "table.name" form, or just "name"
// when Source is empty.
func (c *Column) Identifier() string {
	if c.Source == "" {
		return c.Name
	}
	return c.Source + "." + c.Name
}

// Schema is the Column Registry: an ordered sequence of Column Descriptors
// carried by every iterator stage. Index order matches the positions of
// values in emitted Rows.
type Schema []*Column

// Clone performs a cheap logical copy.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for i, c := range s {
		cp := *c
		out[i] = &cp
	}
	return out
}

// Append concatenates two schemas, as happens when lowering a Cross or Join
// node whose rows are the concatenation of both parents' rows.
func (s Schema) Append(other Schema) Schema {
	out := make(Schema, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out
}

// IndexOf resolves a column identifier against the registry with a
// two-pass search: a qualified match
// (table.name) is tried first, then an unqualified match by name alone,
// which must be unambiguous. Returns -1 if nothing matches.
func (s Schema) IndexOf(table, name string) (int, error) {
	if table != "" {
		for i, c := range s {
			if c.Source == table && strings.EqualFold(c.Name, name) {
				return i, nil
			}
		}
		return -1, ErrUnknownColumn.New(table + "." + name)
	}

	found := -1
	for i, c := range s {
		if strings.EqualFold(c.Name, name) {
			if found != -1 {
				return -1, ErrAmbiguousColumn.New(name)
			}
			found = i
		}
	}
	if found == -1 {
		return -1, ErrUnknownColumn.New(name)
	}
	return found, nil
}

// Contains reports whether a qualified-or-unqualified identifier resolves
// in this registry.
func (s Schema) Contains(table, name string) bool {
	_, err := s.IndexOf(table, name)
	return err == nil
}

// Names returns the bare column names, in order, ignoring Source.
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Name
	}
	return out
}
