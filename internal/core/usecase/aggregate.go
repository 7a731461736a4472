package usecase

import (
	"errors"
	"fmt"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// AggregateByCategory counts records per distinct value of a categorical
// field. Matching is exact, including case and whitespace; records with an
// empty value are excluded.
func AggregateByCategory(records []domain.Record, field string) (domain.AggregateView, error) {
	if _, ok := (domain.Record{}).Categorical(field); !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "aggregate by category", fmt.Errorf("unknown categorical field %q", field))
	}

	view := make(domain.AggregateView)
	for _, rec := range records {
		value, _ := rec.Categorical(field)
		if value == "" {
			continue
		}
		view[value]++
	}
	return view, nil
}

// AggregateByDate counts records per calendar day of the issue date,
// discarding any time-of-day component. Records without a parsed date are
// excluded.
func AggregateByDate(records []domain.Record) domain.AggregateView {
	view := make(domain.AggregateView)
	for _, rec := range records {
		if rec.DateOfIssue == nil {
			continue
		}
		view[rec.DateOfIssue.Format("2006-01-02")]++
	}
	return view
}

// Latest returns the most recent record, which is the last row of the
// source table.
func Latest(records []domain.Record) (domain.Record, error) {
	if len(records) == 0 {
		return domain.Record{}, domain.WrapError(domain.ErrNoData, "latest record", errors.New("snapshot holds no records"))
	}
	return records[len(records)-1], nil
}
