package condition

import (
	"math"
	"sort"

	"oilwatch-backend/internal/catalog"
)

const (
	// DefaultProjectionWindow is how many recent samples the trend fit
	// uses per parameter.
	DefaultProjectionWindow = 5

	minRegressionPoints = 3
	minFitR2            = 0.3
	maxActionableHours  = 10000
	slopeEpsilon        = 1e-9
)

// Projection is a linear extrapolation of one at-risk parameter: at the
// fitted slope, HoursToLimit operating hours remain before the bound is
// breached.
type Projection struct {
	Parameter    string  `json:"parameter"`
	HoursToLimit float64 `json:"hoursToLimit"`
	Slope        float64 `json:"slope"`
	R2           float64 `json:"r2"`
}

// ProjectTimeToCritical fits a linear trend over the recent samples of
// one equipment unit and projects the hours remaining until each
// critical-capable parameter breaches its bound. The fit is a
// deliberately simple least-squares heuristic, so hard filters guard
// its output: near-zero slope, R² below 0.3, a trend moving away from
// the limit, and projections that are non-positive or beyond 10 000
// hours are all discarded. Equipment whose latest sample is already
// Crítico is excluded entirely. Results are sorted ascending by
// hours-to-limit; the first entry is the headline time to critical.
func ProjectTimeToCritical(samples []Sample, equipment string, params []catalog.Parameter, rules RuleTable, window int) []Projection {
	if window <= 0 {
		window = DefaultProjectionWindow
	}
	history := EquipmentHistory(samples, equipment)
	if len(history) < minRegressionPoints {
		return []Projection{}
	}
	latest := history[len(history)-1]
	if ComputeRowMetrics(latest, params, rules).MaxPriority == int(SeverityCritical) {
		return []Projection{}
	}

	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	criticalCols := rules.CriticalColumns()

	projections := []Projection{}
	for _, param := range params {
		if _, ok := criticalCols[param.Column]; !ok {
			continue
		}
		xs, ys := seriesFor(recent, param.Column)
		if len(xs) < minRegressionPoints {
			// Sparse measurements in the window: fall back to the full
			// history before giving up on the parameter.
			xs, ys = seriesFor(history, param.Column)
		}
		if len(xs) < minRegressionPoints {
			continue
		}
		slope, _, r2, ok := LinearRegression(xs, ys)
		if !ok || math.Abs(slope) < slopeEpsilon || r2 < minFitR2 {
			continue
		}
		hours, ok := hoursToLimit(param, slope, ys[len(ys)-1])
		if !ok || hours <= 0 || hours > maxActionableHours {
			continue
		}
		projections = append(projections, Projection{
			Parameter:    param.Name,
			HoursToLimit: hours,
			Slope:        slope,
			R2:           r2,
		})
	}
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].HoursToLimit < projections[j].HoursToLimit
	})
	return projections
}

// hoursToLimit projects toward whichever bound the fitted trend is
// heading for. A rising trend with no upper bound, or a falling trend
// with no lower bound, moves away from every limit and is not
// actionable.
func hoursToLimit(param catalog.Parameter, slope, current float64) (float64, bool) {
	if slope > 0 && param.Max != nil {
		return (*param.Max - current) / slope, true
	}
	if slope < 0 && param.Min != nil {
		return (current - *param.Min) / math.Abs(slope), true
	}
	return 0, false
}

func seriesFor(samples []Sample, column string) ([]float64, []float64) {
	xs := make([]float64, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	for _, sample := range samples {
		value, ok := sample.Value(column)
		if !ok {
			continue
		}
		xs = append(xs, sample.HourMeter)
		ys = append(ys, value)
	}
	return xs, ys
}
