package rowexec

import (
	"fmt"
	"io"

	"github.com/ralite/ralite/sql"
)

// DiscoverSchema peeks the first row a provider produces and infers a
// column registry from it, the fallback for providers that expose no
// column metadata of their own. Columns are named "col0", "col1", … since
// a raw row carries no names. An empty source yields an empty schema
// rather than an error.
func DiscoverSchema(ctx *sql.Context, t sql.Table) (sql.Schema, error) {
	rows, err := sql.Produce(ctx, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close(ctx)

	row, err := rows.Next(ctx)
	if err == io.EOF {
		return sql.Schema{}, nil
	}
	if err != nil {
		return nil, err
	}

	schema := make(sql.Schema, len(row))
	for i, v := range row {
		schema[i] = &sql.Column{
			Name:   fmt.Sprintf("col%d", i),
			Source: t.Name(),
			Type:   sql.TypeOfKind(v.Kind()),
		}
	}
	return schema, nil
}
