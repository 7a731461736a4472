package domain

import "time"

// Semantic field names. These are the JSON keys of Record, the group-by
// selectors of the aggregate API and the names resolved by the schema.
const (
	FieldRequestedAction = "extracted_requested_action"
	FieldDepartment      = "routing_department"
	FieldPredictedIntent = "predicted_intent"
	FieldProduct         = "extracted_product"
	FieldUrgencyLevel    = "urgency_level"
	FieldDateOfIssue     = "date_of_issue"
	FieldConfidence      = "confidence"
	FieldSentimentScore  = "sentiment_score"
	FieldPriorityScore   = "priority_score"
)

// Record is one analyzed email. Every field is always present: categorical
// fields fall back to the empty string, numeric and date fields to nil.
type Record struct {
	RequestedAction string     `json:"extracted_requested_action"`
	Department      string     `json:"routing_department"`
	PredictedIntent string     `json:"predicted_intent"`
	Product         string     `json:"extracted_product"`
	UrgencyLevel    string     `json:"urgency_level"`
	DateOfIssue     *time.Time `json:"date_of_issue"`
	Confidence      *float64   `json:"confidence"`
	SentimentScore  *float64   `json:"sentiment_score"`
	PriorityScore   *float64   `json:"priority_score"`
}

// Categorical returns the value of a groupable string field. The second
// return is false for names that are not categorical fields.
func (r Record) Categorical(field string) (string, bool) {
	switch field {
	case FieldRequestedAction:
		return r.RequestedAction, true
	case FieldDepartment:
		return r.Department, true
	case FieldPredictedIntent:
		return r.PredictedIntent, true
	case FieldProduct:
		return r.Product, true
	case FieldUrgencyLevel:
		return r.UrgencyLevel, true
	}
	return "", false
}

// CategoricalFields lists the groupable fields in dashboard order.
func CategoricalFields() []string {
	return []string{
		FieldDepartment,
		FieldPredictedIntent,
		FieldProduct,
		FieldUrgencyLevel,
		FieldRequestedAction,
	}
}
