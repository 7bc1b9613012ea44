package memory

import (
	"strings"

	"github.com/ralite/ralite/sql"
)

// Database is a simple named collection of Tables, keyed
// case-sensitively.
type Database struct {
	name   string
	tables map[string]sql.Table
}

// NewDatabase builds an empty database.
func NewDatabase(name string) *Database {
	return &Database{name: name, tables: make(map[string]sql.Table)}
}

func (d *Database) Name() string { return d.name }

// AddTable registers a table under its own name.
func (d *Database) AddTable(t sql.Table) { d.tables[t.Name()] = t }

func (d *Database) GetTableInsensitive(ctx *sql.Context, name string) (sql.Table, bool, error) {
	for tableName, t := range d.tables {
		if strings.EqualFold(tableName, name) {
			return t, true, nil
		}
	}
	return nil, false, nil
}

var _ sql.Database = (*Database)(nil)

// Provider resolves a fixed set of Databases by name -- the in-memory
// analogue of a provider that imports "pkg" to resolve "pkg.Table".
type Provider struct {
	databases map[string]*Database
}

// NewProvider builds a provider over the given databases.
func NewProvider(dbs ...*Database) *Provider {
	p := &Provider{databases: make(map[string]*Database)}
	for _, db := range dbs {
		p.databases[db.Name()] = db
	}
	return p
}

func (p *Provider) Database(name string) (sql.Database, error) {
	db, ok := p.databases[name]
	if !ok {
		return nil, sql.ErrTableDoesNotExist.New(name)
	}
	return db, nil
}

func (p *Provider) HasDatabase(name string) bool {
	_, ok := p.databases[name]
	return ok
}

func (p *Provider) AllDatabases() []sql.Database {
	out := make([]sql.Database, 0, len(p.databases))
	for _, db := range p.databases {
		out = append(out, db)
	}
	return out
}

var _ sql.DatabaseProvider = (*Provider)(nil)
