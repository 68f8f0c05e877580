package dataset

import (
	"sort"

	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/condition"
)

// HistoricalEquipment names the synthetic unit that carries the fleet
// averages, so charts can overlay it against any real equipment.
const HistoricalEquipment = "Histórico"

// Historical builds a synthetic sample series for the fleet baseline:
// one sample per distinct hour-meter reading, each parameter set to the
// mean of every real measurement recorded at that reading. Samples of
// the synthetic unit itself are ignored so repeated calls do not feed
// the baseline back into itself.
func Historical(samples []condition.Sample, params []catalog.Parameter) []condition.Sample {
	type accumulator struct {
		sums   map[string]float64
		counts map[string]int
		latest condition.Sample
	}
	byHourMeter := map[float64]*accumulator{}
	for _, sample := range samples {
		if sample.Equipment == HistoricalEquipment {
			continue
		}
		acc, ok := byHourMeter[sample.HourMeter]
		if !ok {
			acc = &accumulator{sums: map[string]float64{}, counts: map[string]int{}}
			byHourMeter[sample.HourMeter] = acc
		}
		if sample.Timestamp.After(acc.latest.Timestamp) {
			acc.latest = sample
		}
		for _, param := range params {
			if v, found := sample.Value(param.Column); found {
				acc.sums[param.Column] += v
				acc.counts[param.Column]++
			}
		}
	}

	hourMeters := make([]float64, 0, len(byHourMeter))
	for hm := range byHourMeter {
		hourMeters = append(hourMeters, hm)
	}
	sort.Float64s(hourMeters)

	baseline := make([]condition.Sample, 0, len(hourMeters))
	for _, hm := range hourMeters {
		acc := byHourMeter[hm]
		values := map[string]float64{}
		for column, sum := range acc.sums {
			values[column] = sum / float64(acc.counts[column])
		}
		baseline = append(baseline, condition.Sample{
			Equipment: HistoricalEquipment,
			Timestamp: acc.latest.Timestamp,
			HourMeter: hm,
			Values:    values,
		})
	}
	return baseline
}
