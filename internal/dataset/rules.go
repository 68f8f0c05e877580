package dataset

import (
	"fmt"

	"oilwatch-backend/internal/condition"
)

// Rule-table source columns.
const (
	colIndicator = "Indicador"
	colDirection = "Tipo"
	colSeverity  = "Severidad Típica"
	colCause     = "Posible Motivo"
	colAction    = "Acción Recomendada"
)

// RulesFromRows coerces raw rule-table rows. Indicator and direction
// identify a rule and are mandatory; severity, cause and action are
// display texts and may be blank.
func RulesFromRows(rows []map[string]any) (condition.RuleTable, error) {
	rules := make(condition.RuleTable, 0, len(rows))
	for i, row := range rows {
		indicator, ok := toString(row[colIndicator])
		if !ok || indicator == "" {
			return nil, fmt.Errorf("rule row %d: missing or invalid %q column", i+1, colIndicator)
		}
		direction, ok := toString(row[colDirection])
		if !ok || direction == "" {
			return nil, fmt.Errorf("rule row %d: missing or invalid %q column", i+1, colDirection)
		}
		severity, _ := toString(row[colSeverity])
		cause, _ := toString(row[colCause])
		action, _ := toString(row[colAction])
		rules = append(rules, condition.Rule{
			Indicator: indicator,
			Direction: direction,
			Severity:  severity,
			Cause:     cause,
			Action:    action,
		})
	}
	return rules, nil
}
