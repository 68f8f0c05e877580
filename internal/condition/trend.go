package condition

import (
	"math"
	"sort"
	"time"

	"oilwatch-backend/internal/catalog"
)

// SeverityBucket is one slice of the fleet severity distribution at a
// month boundary. Percent values are integers post-processed so the
// four buckets always total exactly 100 for a non-empty fleet.
type SeverityBucket struct {
	Level   SeverityLevel `json:"level"`
	Label   string        `json:"label"`
	Count   int           `json:"count"`
	Percent int           `json:"percent"`
}

// GroupShare is the share of all anomalies that fall in one parameter
// group.
type GroupShare struct {
	Group   string  `json:"group"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// IndicatorShare is the share of one indicator+direction within the
// anomalies of its severity.
type IndicatorShare struct {
	Indicator string  `json:"indicator"`
	Severity  string  `json:"severity"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
}

// MonthlyTrendPoint is the cumulative fleet state as of one month-end:
// the severity distribution over the latest-per-equipment samples at or
// before the boundary, plus the anomaly composition by group and by
// indicator.
type MonthlyTrendPoint struct {
	MonthEnd       time.Time        `json:"monthEnd"`
	FleetSize      int              `json:"fleetSize"`
	Severity       []SeverityBucket `json:"severity"`
	TotalAnomalies int              `json:"totalAnomalies"`
	Groups         []GroupShare     `json:"groups"`
	Indicators     []IndicatorShare `json:"indicators"`
}

// MonthlyTrend replays the dataset month by month: every point holds
// the state-as-of that month-end over all samples seen so far, not the
// samples of that month alone. Months before the first sample (never
// produced) and gaps with no new data still get a point reflecting the
// carried-over state.
func MonthlyTrend(samples []Sample, params []catalog.Parameter, rules RuleTable) []MonthlyTrendPoint {
	if len(samples) == 0 {
		return []MonthlyTrendPoint{}
	}
	earliest := samples[0].Timestamp
	latest := samples[0].Timestamp
	for _, sample := range samples[1:] {
		if sample.Timestamp.Before(earliest) {
			earliest = sample.Timestamp
		}
		if sample.Timestamp.After(latest) {
			latest = sample.Timestamp
		}
	}

	points := []MonthlyTrendPoint{}
	for _, month := range monthsBetween(earliest, latest) {
		cutoff := month.AddDate(0, 1, 0)
		snapshot := []Sample{}
		for _, sample := range samples {
			if sample.Timestamp.Before(cutoff) {
				snapshot = append(snapshot, sample)
			}
		}
		points = append(points, trendPoint(cutoff.AddDate(0, 0, -1), snapshot, params, rules))
	}
	return points
}

func trendPoint(monthEnd time.Time, snapshot []Sample, params []catalog.Parameter, rules RuleTable) MonthlyTrendPoint {
	point := MonthlyTrendPoint{
		MonthEnd:   monthEnd,
		Groups:     []GroupShare{},
		Indicators: []IndicatorShare{},
	}
	counts := make([]int, len(Levels()))
	violations := []EnrichedViolation{}
	for _, sample := range latestPerEquipment(snapshot) {
		metrics := ComputeRowMetrics(sample, params, rules)
		counts[metrics.MaxPriority]++
		point.FleetSize++
		violations = append(violations, metrics.Violations...)
	}
	percents := redistributedPercents(counts, point.FleetSize)
	for _, level := range Levels() {
		point.Severity = append(point.Severity, SeverityBucket{
			Level:   level,
			Label:   level.Label(),
			Count:   counts[level],
			Percent: percents[level],
		})
	}
	point.TotalAnomalies = len(violations)
	point.Groups = groupShares(violations, params)
	point.Indicators = indicatorShares(violations)
	return point
}

// redistributedPercents rounds each bucket's percentage and then adds
// the rounding remainder to the largest bucket so the total is exactly
// 100. A zero total yields all zeros.
func redistributedPercents(counts []int, total int) []int {
	percents := make([]int, len(counts))
	if total == 0 {
		return percents
	}
	sum := 0
	largest := 0
	for i, count := range counts {
		percents[i] = int(math.Round(float64(count) * 100 / float64(total)))
		sum += percents[i]
		if count > counts[largest] {
			largest = i
		}
	}
	percents[largest] += 100 - sum
	return percents
}

func groupShares(violations []EnrichedViolation, params []catalog.Parameter) []GroupShare {
	shares := []GroupShare{}
	if len(violations) == 0 {
		return shares
	}
	byGroup := map[string]int{}
	for _, ev := range violations {
		byGroup[ev.Group]++
	}
	for _, group := range catalog.Groups(params) {
		count, ok := byGroup[group]
		if !ok {
			continue
		}
		shares = append(shares, GroupShare{
			Group:   group,
			Count:   count,
			Percent: 100 * float64(count) / float64(len(violations)),
		})
	}
	return shares
}

func indicatorShares(violations []EnrichedViolation) []IndicatorShare {
	shares := []IndicatorShare{}
	if len(violations) == 0 {
		return shares
	}
	type key struct {
		indicator string
		severity  string
	}
	bySeverity := map[string]int{}
	byIndicator := map[key]int{}
	for _, ev := range violations {
		bySeverity[ev.Severity]++
		byIndicator[key{ev.DisplayIndicator, ev.Severity}]++
	}
	for k, count := range byIndicator {
		shares = append(shares, IndicatorShare{
			Indicator: k.indicator,
			Severity:  k.severity,
			Count:     count,
			Percent:   100 * float64(count) / float64(bySeverity[k.severity]),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		pi, pj := PriorityForLabel(shares[i].Severity), PriorityForLabel(shares[j].Severity)
		if pi != pj {
			return pi > pj
		}
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Indicator < shares[j].Indicator
	})
	return shares
}

func monthsBetween(start, end time.Time) []time.Time {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := []time.Time{}
	for !cur.After(last) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}
