package condition

import (
	"fmt"

	"oilwatch-backend/internal/catalog"
)

// Detect checks one sample against the parameter catalog and returns a
// violation for every bound breach. Missing values never trigger nor
// clear an anomaly. The comparison is strict on both sides: a value
// exactly equal to a bound is in range.
func Detect(sample Sample, params []catalog.Parameter) []Violation {
	violations := []Violation{}
	for _, param := range params {
		value, ok := sample.Value(param.Column)
		if !ok {
			continue
		}
		switch {
		case param.Min != nil && value < *param.Min:
			violations = append(violations, newViolation(param, value, DirectionLow, *param.Min))
		case param.Max != nil && value > *param.Max:
			violations = append(violations, newViolation(param, value, DirectionHigh, *param.Max))
		}
	}
	return violations
}

func newViolation(param catalog.Parameter, value float64, dir Direction, limit float64) Violation {
	qualifier := "por encima del máximo"
	if dir == DirectionLow {
		qualifier = "por debajo del mínimo"
	}
	return Violation{
		Name:      param.Name,
		Column:    param.Column,
		Value:     value,
		Direction: dir,
		Limit:     limit,
		Message:   fmt.Sprintf("%s: %.2f → %s %s (%.2f)", param.Name, value, dirLower(dir), qualifier, limit),
		Group:     param.Group,
	}
}

func dirLower(dir Direction) string {
	if dir == DirectionLow {
		return "baja"
	}
	return "alta"
}
