package sql

import "strings"

// Catalog maps table names (and optional aliases) to the providers that can
// produce their rows. Lookup of a directly registered name is
// case-sensitive; the "Table" segment of a multi-segment name is matched
// by the database's GetTableInsensitive, which memory.Database matches
// case-insensitively. Identifiers are stripped of surrounding backticks
// before lookup. A multi-segment name "pkg.Table" resolves by first asking the
// registered DatabaseProvider for a database named "pkg", then looking up
// "Table" within it -- the Go analogue of "dynamically importing pkg and
// looking up Table in its exports".
type Catalog struct {
	provider DatabaseProvider
	// tables holds single-segment names registered directly (the common
	// case: no database qualifier at all).
	tables map[string]Table
}

// NewCatalog returns a Catalog backed by the given DatabaseProvider. A nil
// provider is valid; only directly-registered tables will resolve.
func NewCatalog(provider DatabaseProvider) *Catalog {
	return &Catalog{provider: provider, tables: map[string]Table{}}
}

// Register adds a table directly to the catalog under its own Name().
func (c *Catalog) Register(t Table) {
	c.tables[t.Name()] = t
}

// RegisterAs adds a table under an explicit name or alias.
func (c *Catalog) RegisterAs(name string, t Table) {
	c.tables[name] = t
}

// normalizeIdentifier strips backticks; identifiers may arrive
// backtick-quoted from the parser.
func normalizeIdentifier(name string) string {
	return strings.Trim(name, "`")
}

// Table resolves a possibly qualified table identifier. "Table" resolves
// against directly registered tables; "pkg.Table" resolves by looking up
// database "pkg" in the DatabaseProvider and then table "Table" within it.
func (c *Catalog) Table(ctx *Context, name string) (Table, error) {
	name = normalizeIdentifier(name)

	if idx := strings.LastIndex(name, "."); idx >= 0 {
		dbName := normalizeIdentifier(name[:idx])
		tableName := normalizeIdentifier(name[idx+1:])
		if c.provider != nil {
			db, err := c.provider.Database(dbName)
			if err == nil {
				t, ok, err := db.GetTableInsensitive(ctx, tableName)
				if err != nil {
					return nil, err
				}
				if ok {
					return t, nil
				}
			}
		}
		return nil, ErrTableDoesNotExist.New(name)
	}

	if t, ok := c.tables[name]; ok {
		return t, nil
	}
	return nil, ErrTableDoesNotExist.New(name)
}
