package source

import (
	"reflect"
	"testing"
)

func TestTableFromRowsCleansHeaders(t *testing.T) {
	table := TableFromRows([][]string{
		{`  "output.predicted_intent" `, "", "urgency_level", "urgency_level"},
		{"billing", "x", "High", "Low"},
	})

	want := []string{"output.predicted_intent", "column_2", "urgency_level", "urgency_level_2"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if table.Rows[0]["urgency_level"] != "High" || table.Rows[0]["urgency_level_2"] != "Low" {
		t.Fatalf("duplicate columns should keep both values: %+v", table.Rows[0])
	}
}

func TestTableFromRowsPadsShortRows(t *testing.T) {
	table := TableFromRows([][]string{
		{"a", "b", "c"},
		{"1"},
		{"1", "2", "3"},
	})

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	first := table.Rows[0]
	if first["a"] != "1" || first["b"] != "" || first["c"] != "" {
		t.Fatalf("expected short row padded with empty cells, got %+v", first)
	}
}

func TestTableFromRowsEmptyInput(t *testing.T) {
	table := TableFromRows(nil)
	if !table.Empty() || len(table.Columns) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestTableFromRowsHeaderOnly(t *testing.T) {
	table := TableFromRows([][]string{{"a", "b"}})
	if !table.Empty() {
		t.Fatal("expected no data rows")
	}
	if len(table.Columns) != 2 {
		t.Fatalf("expected header to survive, got %v", table.Columns)
	}
}
