package condition

import (
	"fmt"

	"oilwatch-backend/internal/catalog"
)

// Enrich attaches rule-table severities to violations. A violation with
// no matching rule keeps priority 0 under the sentinel severity label,
// with SeverityKnown false so callers can surface it as "severity
// unknown" instead of healthy.
func Enrich(violations []Violation, rules RuleTable) []EnrichedViolation {
	enriched := make([]EnrichedViolation, 0, len(violations))
	for _, violation := range violations {
		ev := EnrichedViolation{
			Violation:        violation,
			Severity:         SeverityUnknownLabel,
			DisplayIndicator: fmt.Sprintf("%s (%s)", violation.Name, violation.Direction.Display()),
		}
		if rule, ok := rules.Lookup(violation.Column, violation.Direction); ok {
			ev.Severity = rule.Severity
			ev.SeverityKnown = true
			ev.Priority = PriorityForLabel(rule.Severity)
			ev.Cause = rule.Cause
			ev.Action = rule.Action
		}
		enriched = append(enriched, ev)
	}
	return enriched
}

// ComputeRowMetrics runs detection and enrichment for one sample and
// reduces the result to the canonical (max priority, count, violations)
// triple every other aggregation builds on.
func ComputeRowMetrics(sample Sample, params []catalog.Parameter, rules RuleTable) RowMetrics {
	enriched := Enrich(Detect(sample, params), rules)
	maxPriority := 0
	for _, ev := range enriched {
		if ev.Priority > maxPriority {
			maxPriority = ev.Priority
		}
	}
	return RowMetrics{
		MaxPriority: maxPriority,
		Count:       len(enriched),
		Violations:  enriched,
	}
}
