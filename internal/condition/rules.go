package condition

import "strings"

// Rule is one row of the externally supplied rule table: for a given
// indicator column and breach direction, the typical severity plus the
// probable cause and recommended action texts.
type Rule struct {
	Indicator string `json:"indicator"`
	Direction string `json:"direction"`
	Severity  string `json:"severity"`
	Cause     string `json:"cause"`
	Action    string `json:"action"`
}

// RuleTable is a read-only lookup keyed by (indicator, direction).
// When duplicate rows exist the first match is authoritative.
type RuleTable []Rule

// Lookup finds the first rule for the given column and direction. The
// direction comparison is case-insensitive because rule tables store it
// as free text.
func (t RuleTable) Lookup(column string, dir Direction) (Rule, bool) {
	for _, rule := range t {
		if rule.Indicator == column && strings.EqualFold(rule.Direction, string(dir)) {
			return rule, true
		}
	}
	return Rule{}, false
}

// CriticalColumns returns the set of indicator columns that have at
// least one rule whose typical severity is Crítico. Only these can put
// an equipment on a path to critical, so projections restrict to them.
func (t RuleTable) CriticalColumns() map[string]struct{} {
	cols := map[string]struct{}{}
	for _, rule := range t {
		if strings.EqualFold(rule.Severity, labelCritical) {
			cols[rule.Indicator] = struct{}{}
		}
	}
	return cols
}
