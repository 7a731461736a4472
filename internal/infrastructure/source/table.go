package source

import (
	"fmt"
	"strings"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// TableFromRows builds a raw table from header-first row data. Headers are
// trimmed and stripped of stray quotes, blank headers get positional names
// and duplicates are suffixed. Short rows are padded so every row exposes
// every column.
func TableFromRows(rows [][]string) domain.RawTable {
	if len(rows) == 0 {
		return domain.RawTable{}
	}

	columns := cleanHeader(rows[0])
	table := domain.RawTable{
		Columns: columns,
		Rows:    make([]domain.RawRow, 0, len(rows)-1),
	}

	for _, cells := range rows[1:] {
		row := make(domain.RawRow, len(columns))
		for i, column := range columns {
			if i < len(cells) {
				row[column] = cells[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func cleanHeader(cells []string) []string {
	columns := make([]string, len(cells))
	seen := make(map[string]int, len(cells))

	for i, cell := range cells {
		name := strings.TrimSpace(strings.ReplaceAll(cell, `"`, ""))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		columns[i] = name
	}
	return columns
}
