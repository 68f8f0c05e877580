package condition

import "oilwatch-backend/internal/catalog"

// ParameterSummary is the descriptive statistics of one parameter over
// an equipment history, for the detail view next to the trend chart.
type ParameterSummary struct {
	Parameter string   `json:"parameter"`
	Column    string   `json:"column"`
	Count     int      `json:"count"`
	Mean      float64  `json:"mean"`
	Median    float64  `json:"median"`
	StdDev    float64  `json:"stdDev"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	Latest    float64  `json:"latest"`
	LowerSpec *float64 `json:"lowerSpec,omitempty"`
	UpperSpec *float64 `json:"upperSpec,omitempty"`
}

// SummarizeHistory computes per-parameter statistics over a sample
// series, catalog order preserved. Parameters with no measurements in
// the series are omitted. The series is expected sorted ascending, as
// EquipmentHistory returns it, so the last measurement is the latest.
func SummarizeHistory(history []Sample, params []catalog.Parameter) []ParameterSummary {
	summaries := []ParameterSummary{}
	for _, param := range params {
		values := []float64{}
		for _, sample := range history {
			if v, ok := sample.Value(param.Column); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		min, max := values[0], values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		summaries = append(summaries, ParameterSummary{
			Parameter: param.Name,
			Column:    param.Column,
			Count:     len(values),
			Mean:      Mean(values),
			Median:    Median(values),
			StdDev:    StdDev(values, false),
			Min:       min,
			Max:       max,
			Latest:    values[len(values)-1],
			LowerSpec: param.Min,
			UpperSpec: param.Max,
		})
	}
	return summaries
}
