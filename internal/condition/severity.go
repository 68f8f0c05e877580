package condition

// SeverityLevel is the fixed four-step severity scale. Aggregations
// always take the worst case, so the numeric order is the contract.
type SeverityLevel int

const (
	SeverityHealthy   SeverityLevel = 0
	SeverityAttention SeverityLevel = 1
	SeverityCaution   SeverityLevel = 2
	SeverityCritical  SeverityLevel = 3
)

const (
	labelHealthy   = "Sano"
	labelAttention = "Atención"
	labelCaution   = "Precaución"
	labelCritical  = "Crítico"

	// SeverityUnknownLabel marks a violation whose rule-table lookup
	// found no row. It maps to priority 0 but is a distinct state from
	// confirmed healthy.
	SeverityUnknownLabel = "No disponible"
)

// Label returns the canonical severity text rule tables are authored
// against.
func (l SeverityLevel) Label() string {
	switch l {
	case SeverityAttention:
		return labelAttention
	case SeverityCaution:
		return labelCaution
	case SeverityCritical:
		return labelCritical
	default:
		return labelHealthy
	}
}

// Levels returns all severity levels in ascending order.
func Levels() []SeverityLevel {
	return []SeverityLevel{SeverityHealthy, SeverityAttention, SeverityCaution, SeverityCritical}
}

var labelPriority = map[string]int{
	labelHealthy:   0,
	labelAttention: 1,
	labelCaution:   2,
	labelCritical:  3,
}

// PriorityForLabel maps a severity label to its ordinal rank.
// Unrecognized labels rank 0.
func PriorityForLabel(label string) int {
	return labelPriority[label]
}
