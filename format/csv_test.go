package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func sampleSchema() sql.Schema {
	return sql.Schema{
		{Name: "id", Source: "t", Type: sql.TypeInt64},
		{Name: "name", Source: "t", Type: sql.TypeText},
	}
}

func TestCSVRendersHeaderAndRows(t *testing.T) {
	out, err := CSV(sampleSchema(), []sql.Row{
		sql.NewRow(int64(1), "ed"),
		sql.NewRow(int64(2), "john"),
	})
	require.NoError(t, err)
	require.Equal(t, "id,name\n1,ed\n2,john\n", out)
}

func TestCSVRendersNullAsEmptyField(t *testing.T) {
	out, err := CSV(sampleSchema(), []sql.Row{
		{sql.NewInt64(1), sql.Null},
	})
	require.NoError(t, err)
	require.Equal(t, "id,name\n1,\n", out)
}

func TestCSVEmptyResultIsJustHeader(t *testing.T) {
	out, err := CSV(sampleSchema(), nil)
	require.NoError(t, err)
	require.Equal(t, "id,name\n", out)
}
