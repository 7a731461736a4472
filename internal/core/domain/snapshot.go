package domain

import "time"

// AggregateView counts records per category value, or per ISO calendar date
// for the daily view.
type AggregateView map[string]int

// NormalizeReport describes what normalization did to one raw table.
type NormalizeReport struct {
	RowsIn         int
	RowsDropped    int
	MissingColumns []string
	ParseFailures  map[string]int
}

// Snapshot is one cached fetch-and-normalize result. A failed fetch still
// produces a snapshot: empty records plus a cause describing the failure.
type Snapshot struct {
	Records   []Record  `json:"records"`
	FetchedAt time.Time `json:"fetched_at"`
	Source    string    `json:"source,omitempty"`
	Cause     string    `json:"cause,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// DataAvailable reports whether the snapshot carries at least one record.
func (s Snapshot) DataAvailable() bool {
	return len(s.Records) > 0
}

// Overview is the ready-to-render dashboard payload.
type Overview struct {
	DataAvailable bool                     `json:"data_available"`
	FetchedAt     time.Time                `json:"fetched_at"`
	Source        string                   `json:"source,omitempty"`
	Cause         string                   `json:"cause,omitempty"`
	Warnings      []string                 `json:"warnings,omitempty"`
	TotalRecords  int                      `json:"total_records"`
	Latest        *Record                  `json:"latest,omitempty"`
	Aggregates    map[string]AggregateView `json:"aggregates"`
	Daily         AggregateView            `json:"daily"`
}
