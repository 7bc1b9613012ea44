package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralite/ralite/sql"
)

func TestDatabaseAddTableAndLookup(t *testing.T) {
	db := NewDatabase("db")
	tbl := NewTable("Users", testSchema(), nil)
	db.AddTable(tbl)

	got, ok, err := db.GetTableInsensitive(sql.NewEmptyContext(), "users")
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, tbl, got)
}

func TestDatabaseGetTableInsensitiveMissingReturnsFalse(t *testing.T) {
	db := NewDatabase("db")
	_, ok, err := db.GetTableInsensitive(sql.NewEmptyContext(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProviderDatabaseAndHasDatabase(t *testing.T) {
	db := NewDatabase("db1")
	provider := NewProvider(db)

	require.True(t, provider.HasDatabase("db1"))
	require.False(t, provider.HasDatabase("db2"))

	got, err := provider.Database("db1")
	require.NoError(t, err)
	require.Same(t, db, got)
}

func TestProviderDatabaseUnknownErrors(t *testing.T) {
	provider := NewProvider()
	_, err := provider.Database("nope")
	require.Error(t, err)
}

func TestProviderAllDatabases(t *testing.T) {
	db1 := NewDatabase("db1")
	db2 := NewDatabase("db2")
	provider := NewProvider(db1, db2)

	all := provider.AllDatabases()
	require.Len(t, all, 2)
}
