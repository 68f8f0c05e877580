package condition

import "time"

// Sample is one oil-analysis reading for one equipment unit. Values
// holds the measured parameters keyed by source column; a missing cell
// is simply absent from the map.
type Sample struct {
	Equipment string             `json:"equipment"`
	Timestamp time.Time          `json:"timestamp"`
	HourMeter float64            `json:"hourMeter"`
	Values    map[string]float64 `json:"values"`
}

// Value reads a measurement by column key.
func (s Sample) Value(column string) (float64, bool) {
	v, ok := s.Values[column]
	return v, ok
}

// Direction tells which bound a reading breached. The values match the
// direction text used by rule tables.
type Direction string

const (
	DirectionHigh Direction = "ALTA"
	DirectionLow  Direction = "BAJA"
)

// Display returns the capitalized form used in chart labels.
func (d Direction) Display() string {
	switch d {
	case DirectionHigh:
		return "Alta"
	case DirectionLow:
		return "Baja"
	default:
		return string(d)
	}
}

// Violation is one parameter reading outside its configured bound,
// before any severity is known.
type Violation struct {
	Name      string    `json:"name"`
	Column    string    `json:"column"`
	Value     float64   `json:"value"`
	Direction Direction `json:"direction"`
	Limit     float64   `json:"limit"`
	Message   string    `json:"message"`
	Group     string    `json:"group"`
}

// EnrichedViolation is a Violation plus the severity looked up in the
// rule table. SeverityKnown is false when the table had no matching
// row; such violations carry the sentinel severity label and priority 0
// but must not be read as confirmed healthy.
type EnrichedViolation struct {
	Violation
	Severity         string `json:"severity"`
	SeverityKnown    bool   `json:"severityKnown"`
	Priority         int    `json:"priority"`
	DisplayIndicator string `json:"displayIndicator"`
	Cause            string `json:"cause,omitempty"`
	Action           string `json:"action,omitempty"`
}

// RowMetrics is the canonical health of a single sample.
type RowMetrics struct {
	MaxPriority int                 `json:"maxPriority"`
	Count       int                 `json:"count"`
	Violations  []EnrichedViolation `json:"violations"`
}

// EquipmentState is the latest-sample snapshot for one equipment unit.
type EquipmentState struct {
	Equipment string     `json:"equipment"`
	Sample    Sample     `json:"sample"`
	Metrics   RowMetrics `json:"metrics"`
}
