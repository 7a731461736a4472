package domain

// RawRow maps cleaned column headers to raw cell text.
type RawRow map[string]string

// RawTable is the untyped result of one source fetch. It lives only for the
// duration of one normalization pass.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// Empty reports whether the table carries no data rows.
func (t RawTable) Empty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the header row contains name.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
