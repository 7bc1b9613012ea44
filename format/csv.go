// Package format renders a query's result schema and rows into the text
// output formats the engine exposes.
package format

import (
	"bytes"
	"encoding/csv"

	"github.com/ralite/ralite/sql"
)

// CSV renders schema and rows as RFC 4180 CSV text, header row first.
// NULL renders as an empty field, matching how most SQL clients export.
func CSV(schema sql.Schema, rows []sql.Row) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(schema))
	for i, col := range schema {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if v.IsNull() {
				record[i] = ""
				continue
			}
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
