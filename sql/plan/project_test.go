package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
)

func TestProjectSchemaFromBareGetField(t *testing.T) {
	child := NewTable("users", &planStubTable{schema: sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
	}})
	p := NewProject([]expression.Expression{expression.NewGetField(0, sql.TypeInt64, "id")}, child)

	schema := p.Schema()
	require.Len(t, schema, 1)
	require.Equal(t, "id", schema[0].Name)
	require.Equal(t, "users", schema[0].Source)
	require.Equal(t, sql.TypeInt64, schema[0].Type)
}

func TestProjectSchemaFromAlias(t *testing.T) {
	child := NewTable("users", &planStubTable{schema: sql.Schema{
		{Name: "id", Source: "users", Type: sql.TypeInt64},
	}})
	p := NewProject([]expression.Expression{
		expression.NewAlias("user_id", expression.NewGetField(0, sql.TypeInt64, "id")),
	}, child)

	schema := p.Schema()
	require.Equal(t, "user_id", schema[0].Name)
	require.Equal(t, sql.TypeInt64, schema[0].Type)
}

func TestProjectSchemaFromOpaqueExpressionDefaultsToText(t *testing.T) {
	child := NewTable("users", &planStubTable{schema: sql.Schema{}})
	lit := expression.NewLiteral(sql.NewInt64(1))
	p := NewProject([]expression.Expression{lit}, child)

	schema := p.Schema()
	require.Equal(t, "1", schema[0].Name)
	require.Equal(t, sql.TypeText, schema[0].Type)
	require.Equal(t, "", schema[0].Source)
}

func TestProjectStringAndWithChildren(t *testing.T) {
	child := NewTable("users", nil)
	proj := []expression.Expression{expression.NewGetField(0, sql.TypeInt64, "id")}
	p := NewProject(proj, child)
	require.Equal(t, "Project(Table(users), id)", p.String())

	other := NewTable("other", nil)
	rebuilt, err := p.WithChildren(other)
	require.NoError(t, err)
	rp, ok := rebuilt.(*Project)
	require.True(t, ok)
	require.Same(t, other, rp.Child)

	_, err = p.WithChildren(other, other)
	require.Error(t, err)
}
