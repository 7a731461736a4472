package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// dateLayouts are tried in order when coercing date cells. ISO forms come
// first because the analyzer emits them.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

// Normalizer turns raw tables into typed records using a column schema.
type Normalizer struct {
	schema domain.Schema
}

func NewNormalizer(schema domain.Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// Normalize converts a raw table into records. It never fails: fully empty
// rows are dropped, cells that resist coercion become nil values, and
// missing source columns leave their field empty and are reported.
func (n *Normalizer) Normalize(table domain.RawTable) ([]domain.Record, domain.NormalizeReport) {
	report := domain.NormalizeReport{
		RowsIn:        len(table.Rows),
		ParseFailures: make(map[string]int),
	}

	columns := n.resolveColumns(table, &report)

	records := make([]domain.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		if rowIsEmpty(table.Columns, row) {
			report.RowsDropped++
			continue
		}
		records = append(records, n.buildRecord(row, columns, &report))
	}
	return records, report
}

// resolveColumns maps each schema field to the first alias present in the
// table header. Absent fields are recorded once per pass.
func (n *Normalizer) resolveColumns(table domain.RawTable, report *domain.NormalizeReport) map[string]string {
	columns := make(map[string]string, len(n.schema.Fields))
	for _, spec := range n.schema.Fields {
		for _, alias := range spec.Aliases {
			if table.HasColumn(alias) {
				columns[spec.Name] = alias
				break
			}
		}
		if _, ok := columns[spec.Name]; !ok {
			report.MissingColumns = append(report.MissingColumns, spec.Name)
		}
	}
	return columns
}

func (n *Normalizer) buildRecord(row domain.RawRow, columns map[string]string, report *domain.NormalizeReport) domain.Record {
	var rec domain.Record
	for _, spec := range n.schema.Fields {
		column, ok := columns[spec.Name]
		if !ok {
			continue
		}
		setField(&rec, spec, row[column], report)
	}
	return rec
}

func setField(rec *domain.Record, spec domain.FieldSpec, cell string, report *domain.NormalizeReport) {
	if spec.Kind == domain.KindCategorical {
		setCategorical(rec, spec.Name, cell)
		return
	}

	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return
	}

	switch spec.Kind {
	case domain.KindNumeric:
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			report.ParseFailures[spec.Name]++
			return
		}
		setNumeric(rec, spec.Name, value)
	case domain.KindDate:
		when, ok := parseDate(trimmed)
		if !ok {
			report.ParseFailures[spec.Name]++
			return
		}
		setDate(rec, spec.Name, when)
	}
}

func setCategorical(rec *domain.Record, field, value string) {
	switch field {
	case domain.FieldRequestedAction:
		rec.RequestedAction = value
	case domain.FieldDepartment:
		rec.Department = value
	case domain.FieldPredictedIntent:
		rec.PredictedIntent = value
	case domain.FieldProduct:
		rec.Product = value
	case domain.FieldUrgencyLevel:
		rec.UrgencyLevel = value
	}
}

func setNumeric(rec *domain.Record, field string, value float64) {
	switch field {
	case domain.FieldConfidence:
		rec.Confidence = &value
	case domain.FieldSentimentScore:
		rec.SentimentScore = &value
	case domain.FieldPriorityScore:
		rec.PriorityScore = &value
	}
}

func setDate(rec *domain.Record, field string, when time.Time) {
	if field == domain.FieldDateOfIssue {
		rec.DateOfIssue = &when
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, value); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

func rowIsEmpty(columns []string, row domain.RawRow) bool {
	for _, column := range columns {
		if row[column] != "" {
			return false
		}
	}
	return true
}
