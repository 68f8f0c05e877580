package condition

import (
	"sort"

	"oilwatch-backend/internal/catalog"
)

// WearRate is the fitted growth rate of one wear metal for one
// equipment unit, expressed in ppm per 1000 operating hours.
type WearRate struct {
	Equipment  string  `json:"equipment"`
	Metal      string  `json:"metal"`
	RatePer1kh float64 `json:"ratePer1kh"`
	R2         float64 `json:"r2"`
	Points     int     `json:"points"`
}

// WearRates fits a regression of concentration against hour meter for
// every wear-metal parameter of every equipment unit and reports the
// slope scaled to ppm per 1000 hours. Series with fewer than three
// measurements are skipped. Results are grouped by equipment and, per
// equipment, sorted by rate descending so the fastest-wearing metal
// leads.
func WearRates(samples []Sample, params []catalog.Parameter) []WearRate {
	metals := []catalog.Parameter{}
	for _, param := range params {
		if param.Group == catalog.GroupWearMetals {
			metals = append(metals, param)
		}
	}

	equipments := map[string]struct{}{}
	order := []string{}
	for _, sample := range samples {
		if _, ok := equipments[sample.Equipment]; !ok {
			equipments[sample.Equipment] = struct{}{}
			order = append(order, sample.Equipment)
		}
	}
	sort.Strings(order)

	rates := []WearRate{}
	for _, equipment := range order {
		history := EquipmentHistory(samples, equipment)
		perEquipment := []WearRate{}
		for _, metal := range metals {
			xs, ys := seriesFor(history, metal.Column)
			if len(xs) < minRegressionPoints {
				continue
			}
			slope, _, r2, ok := LinearRegression(xs, ys)
			if !ok {
				continue
			}
			perEquipment = append(perEquipment, WearRate{
				Equipment:  equipment,
				Metal:      metal.Name,
				RatePer1kh: slope * 1000,
				R2:         r2,
				Points:     len(xs),
			})
		}
		sort.SliceStable(perEquipment, func(i, j int) bool {
			return perEquipment[i].RatePer1kh > perEquipment[j].RatePer1kh
		})
		rates = append(rates, perEquipment...)
	}
	return rates
}
