package format

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ralite/ralite/sql"
)

// Table renders schema and rows as a Github-flavored Markdown table via
// tablewriter.
func Table(schema sql.Schema, rows []sql.Row) (string, error) {
	var buf strings.Builder

	header := make([]string, len(schema))
	for i, col := range schema {
		header[i] = col.Name
	}

	w := tablewriter.NewWriter(&buf)
	w.SetHeader(header)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	w.SetCenterSeparator("|")

	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if v.IsNull() {
				record[i] = "NULL"
				continue
			}
			record[i] = v.String()
		}
		w.Append(record)
	}

	w.Render()
	return buf.String(), nil
}
