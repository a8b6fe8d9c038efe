package metrics

import "math"

// PriceSummary captures the spread of a set of quoted prices in USD.
type PriceSummary struct {
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// IsZero reports whether no prices were observed.
func (p PriceSummary) IsZero() bool {
	return p.Count == 0
}

// SummarizePrices folds the given prices into a PriceSummary. The average is
// rounded to cents.
func SummarizePrices(prices []float64) PriceSummary {
	if len(prices) == 0 {
		return PriceSummary{}
	}
	summary := PriceSummary{Count: len(prices), Min: prices[0], Max: prices[0]}
	total := 0.0
	for _, p := range prices {
		if p < summary.Min {
			summary.Min = p
		}
		if p > summary.Max {
			summary.Max = p
		}
		total += p
	}
	summary.Average = math.Round(total/float64(len(prices))*100) / 100
	return summary
}
