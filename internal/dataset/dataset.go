package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/condition"
)

// Dataset is one loaded batch of oil-analysis rows. Version changes on
// every load and keys the memoized aggregations downstream.
type Dataset struct {
	Version  uuid.UUID          `json:"version"`
	LoadedAt time.Time          `json:"loadedAt"`
	Samples  []condition.Sample `json:"samples"`
}

// New validates and coerces raw source rows into samples. The identity
// columns are mandatory on every row and loading fails fast on the
// first row that misses or mangles one; measurement cells that are
// absent or non-numeric are simply left out of the sample, matching
// how detection treats missing values.
func New(rows []map[string]any, params []catalog.Parameter) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	samples := make([]condition.Sample, 0, len(rows))
	for i, row := range rows {
		sample, err := sampleFromRow(row, params)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		samples = append(samples, sample)
	}
	return &Dataset{
		Version:  uuid.New(),
		LoadedAt: time.Now().UTC(),
		Samples:  samples,
	}, nil
}

func sampleFromRow(row map[string]any, params []catalog.Parameter) (condition.Sample, error) {
	equipment, ok := toString(row[catalog.ColEquipment])
	if !ok || equipment == "" {
		return condition.Sample{}, fmt.Errorf("missing or invalid %q column", catalog.ColEquipment)
	}
	timestamp, ok := toTime(row[catalog.ColDate])
	if !ok {
		return condition.Sample{}, fmt.Errorf("missing or invalid %q column", catalog.ColDate)
	}
	hourMeter, ok := toFloat(row[catalog.ColHourMeter])
	if !ok {
		return condition.Sample{}, fmt.Errorf("missing or invalid %q column", catalog.ColHourMeter)
	}
	values := map[string]float64{}
	for _, param := range params {
		cell, present := row[param.Column]
		if !present || cell == nil {
			continue
		}
		if v, ok := toFloat(cell); ok {
			values[param.Column] = v
		}
	}
	return condition.Sample{
		Equipment: equipment,
		Timestamp: timestamp,
		HourMeter: hourMeter,
		Values:    values,
	}, nil
}

// Equipments lists the distinct equipment names in first-appearance
// order.
func (d *Dataset) Equipments() []string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, sample := range d.Samples {
		if _, ok := seen[sample.Equipment]; ok {
			continue
		}
		seen[sample.Equipment] = struct{}{}
		names = append(names, sample.Equipment)
	}
	return names
}
