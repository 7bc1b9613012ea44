package plan

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/transform"
)

// Table is the Table(id) leaf -- a reference to a registered provider by
// identifier. Self-joins register the same underlying provider under
// distinct identifiers (a `name^2` suffix on the second reference);
// the planbuilder resolves the identifier against the sql.Catalog and
// stores the resolved provider on this node.
type Table struct {
	Identifier string
	provider   sql.Table
	// schema is the registry this reference presents to the query: the
	// provider's columns re-sourced under the reference's qualifier (its
	// alias, or the instance identifier on a self-join), or a schema
	// recovered by row inspection when the provider declares none. Nil
	// means the provider's own schema is used as-is.
	schema sql.Schema
}

// NewTable builds a leaf referencing the given table identifier. provider
// may be nil; only the planbuilder resolves identifiers against a Catalog.
func NewTable(identifier string, provider sql.Table) *Table {
	return &Table{Identifier: identifier, provider: provider}
}

// NewTableWithSchema builds a Table leaf presenting the given schema in
// place of the provider's own, for aliased references (whose columns
// resolve under the alias, not the underlying table name) and for
// providers whose Schema() is nil.
func NewTableWithSchema(identifier string, provider sql.Table, schema sql.Schema) *Table {
	return &Table{Identifier: identifier, provider: provider, schema: schema}
}

// Provider returns the resolved backing sql.Table, or nil if unresolved.
func (t *Table) Provider() sql.Table { return t.provider }

func (t *Table) Schema() sql.Schema {
	if t.schema != nil {
		return t.schema
	}
	if t.provider == nil {
		return nil
	}
	return t.provider.Schema()
}

func (t *Table) Children() []transform.Node { return nil }

func (t *Table) WithChildren(children ...transform.Node) (transform.Node, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New(0, len(children))
	}
	return t, nil
}

func (t *Table) String() string { return "Table(" + t.Identifier + ")" }

// EmptySet is the ⊥ leaf: zero rows, empty registry.
type EmptySet struct{}

// NewEmptySet builds the empty-relation leaf.
func NewEmptySet() *EmptySet { return &EmptySet{} }

func (e *EmptySet) Schema() sql.Schema         { return sql.Schema{} }
func (e *EmptySet) Children() []transform.Node { return nil }
func (e *EmptySet) String() string             { return "EmptySet" }
func (e *EmptySet) WithChildren(c ...transform.Node) (transform.Node, error) {
	if len(c) != 0 {
		return nil, ErrInvalidChildCount.New(0, len(c))
	}
	return e, nil
}

// UniverseSet is the 𝕌 leaf: the cross-product identity.
type UniverseSet struct{}

// NewUniverseSet builds the universal-relation leaf.
func NewUniverseSet() *UniverseSet { return &UniverseSet{} }

func (u *UniverseSet) Schema() sql.Schema         { return sql.Schema{} }
func (u *UniverseSet) Children() []transform.Node { return nil }
func (u *UniverseSet) String() string             { return "UniverseSet" }
func (u *UniverseSet) WithChildren(c ...transform.Node) (transform.Node, error) {
	if len(c) != 0 {
		return nil, ErrInvalidChildCount.New(0, len(c))
	}
	return u, nil
}

// OneRowSet is a single zero-width row: the driving relation for a
// FROM-less SELECT, including a projected EXISTS subquery
// (SELECT EXISTS(...)), which plans as a Project over this leaf.
type OneRowSet struct{}

// NewOneRowSet builds the single-empty-row leaf.
func NewOneRowSet() *OneRowSet { return &OneRowSet{} }

func (o *OneRowSet) Schema() sql.Schema         { return sql.Schema{} }
func (o *OneRowSet) Children() []transform.Node { return nil }
func (o *OneRowSet) String() string             { return "OneRowSet" }
func (o *OneRowSet) WithChildren(c ...transform.Node) (transform.Node, error) {
	if len(c) != 0 {
		return nil, ErrInvalidChildCount.New(0, len(c))
	}
	return o, nil
}
