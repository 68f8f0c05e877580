package condition

import (
	"sort"

	"oilwatch-backend/internal/catalog"
)

// latestPerEquipment picks, for every equipment unit, the sample with
// the highest hour-meter reading. Samples are stably sorted ascending
// first, so when several share the top hour meter the last loaded wins.
func latestPerEquipment(samples []Sample) map[string]Sample {
	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].HourMeter < ordered[j].HourMeter
	})
	latest := map[string]Sample{}
	for _, sample := range ordered {
		latest[sample.Equipment] = sample
	}
	return latest
}

// LatestState computes the per-equipment latest snapshot with its row
// metrics. Equipment with no samples simply has no entry.
func LatestState(samples []Sample, params []catalog.Parameter, rules RuleTable) map[string]EquipmentState {
	states := map[string]EquipmentState{}
	for equipment, sample := range latestPerEquipment(samples) {
		states[equipment] = EquipmentState{
			Equipment: equipment,
			Sample:    sample,
			Metrics:   ComputeRowMetrics(sample, params, rules),
		}
	}
	return states
}

// EquipmentHistory returns the samples of one equipment unit ordered by
// hour meter ascending.
func EquipmentHistory(samples []Sample, equipment string) []Sample {
	history := []Sample{}
	for _, sample := range samples {
		if sample.Equipment == equipment {
			history = append(history, sample)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].HourMeter < history[j].HourMeter
	})
	return history
}
