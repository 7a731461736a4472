package domain

// FieldKind tells the normalizer how to coerce a field's cells.
type FieldKind string

const (
	KindCategorical FieldKind = "categorical"
	KindNumeric     FieldKind = "numeric"
	KindDate        FieldKind = "date"
)

// FieldSpec binds one semantic field to the source columns that may carry it.
// Aliases are checked in order; the first one present in the table wins.
type FieldSpec struct {
	Name    string
	Kind    FieldKind
	Aliases []string
}

// Schema is the semantic field set of the email analysis table. The field
// set is fixed; only the column aliases are configurable.
type Schema struct {
	Fields []FieldSpec
}

// DefaultSchema resolves both the raw analyzer output, which uses dotted
// column names, and flattened spreadsheet exports.
func DefaultSchema() Schema {
	return Schema{Fields: []FieldSpec{
		{
			Name:    FieldRequestedAction,
			Kind:    KindCategorical,
			Aliases: []string{"output.extracted_requested_action", "extracted_requested_action", "requested_action"},
		},
		{
			Name:    FieldDepartment,
			Kind:    KindCategorical,
			Aliases: []string{"output.routing_recommendation.department", "routing_department", "department"},
		},
		{
			Name:    FieldPredictedIntent,
			Kind:    KindCategorical,
			Aliases: []string{"output.predicted_intent", "predicted_intent", "intent"},
		},
		{
			Name:    FieldProduct,
			Kind:    KindCategorical,
			Aliases: []string{"output.extracted_product", "extracted_product", "product"},
		},
		{
			Name:    FieldUrgencyLevel,
			Kind:    KindCategorical,
			Aliases: []string{"output.urgency_level", "urgency_level", "urgency"},
		},
		{
			Name:    FieldDateOfIssue,
			Kind:    KindDate,
			Aliases: []string{"output.extracted_date_of_issue", "extracted_date_of_issue", "date_of_issue"},
		},
		{
			Name:    FieldConfidence,
			Kind:    KindNumeric,
			Aliases: []string{"output.confidence", "confidence"},
		},
		{
			Name:    FieldSentimentScore,
			Kind:    KindNumeric,
			Aliases: []string{"output.sentiment_score", "sentiment_score"},
		},
		{
			Name:    FieldPriorityScore,
			Kind:    KindNumeric,
			Aliases: []string{"output.priority_score", "priority_score"},
		},
	}}
}

// Field looks up a spec by semantic name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
