package hotel

import (
	"math"
	"sort"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
)

// Config holds the scoring weights and thresholds.
type Config struct {
	StormDayThreshold   int     `yaml:"stormDayThreshold"`
	OverBudgetTolerance float64 `yaml:"overBudgetTolerance"`
	BrandBonus          float64 `yaml:"brandBonus"`
	RatingWeight        float64 `yaml:"ratingWeight"`
	BudgetFitWeight     float64 `yaml:"budgetFitWeight"`
	AnomalyPenalty      float64 `yaml:"anomalyPenalty"`
}

// DefaultConfig returns the weights used when none are configured.
func DefaultConfig() Config {
	return Config{
		StormDayThreshold:   weather.DefaultStormDayThreshold,
		OverBudgetTolerance: 0.15,
		BrandBonus:          20,
		RatingWeight:        40,
		BudgetFitWeight:     30,
		AnomalyPenalty:      15,
	}
}

// Evaluator ranks hotels against a profile. It holds no state between calls.
type Evaluator struct {
	cfg Config
}

// NewEvaluator builds an evaluator; a zero Config falls back to DefaultConfig.
func NewEvaluator(cfg Config) *Evaluator {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Evaluator{cfg: cfg}
}

// Evaluate ranks in-budget hotels best first. A storm discount is never
// rewarded when window carries storm risk.
func (e *Evaluator) Evaluate(candidates []Hotel, p profile.UserProfile, window weather.Window) Result {
	result := Result{
		Ranked:    make([]Evaluated, 0, len(candidates)),
		Excluded:  []Excluded{},
		Anomalies: []Anomaly{},
	}
	stormRisk := window.StormRisk(e.cfg.StormDayThreshold)
	for _, h := range candidates {
		brandMatch := p.PrefersBrand(h.Brand)
		inBudget := p.HotelBudget.Contains(h.NightlyRate)
		if !inBudget && !e.tolerated(h, brandMatch, p) {
			result.Excluded = append(result.Excluded, Excluded{Hotel: h, Reason: ReasonOutsideBudget})
			continue
		}

		out := Evaluated{
			Hotel:         h,
			BrandMatch:    brandMatch,
			WithinBudget:  inBudget,
			MatchesWindow: window.Near(h.CheckIn, p.FlexibilityDays),
		}
		if !inBudget {
			out.Annotations = append(out.Annotations, AnnotationOverBudgetPreferred)
		}

		score := e.cfg.RatingWeight * math.Min(h.Rating, MaxRating) / MaxRating
		if brandMatch {
			score += e.cfg.BrandBonus
		}
		if h.HasStormDiscount && stormRisk {
			anomaly := Anomaly{
				Hotel:       h.Name,
				CheckIn:     h.CheckIn,
				NightlyRate: h.NightlyRate,
				StormDays:   window.StormDays,
				Reason:      AnnotationStormDiscount,
			}
			out.Anomaly = &anomaly
			out.Annotations = append(out.Annotations, AnnotationStormDiscount)
			result.Anomalies = append(result.Anomalies, anomaly)
			score -= e.cfg.AnomalyPenalty
		} else {
			score += e.cfg.BudgetFitWeight * budgetFit(h.NightlyRate, p.HotelBudget)
		}
		out.Score = math.Round(score*100) / 100
		result.Ranked = append(result.Ranked, out)
	}

	SortRanked(result.Ranked)
	return result
}

// tolerated keeps a preferred brand that is at most OverBudgetTolerance above
// the budget maximum.
func (e *Evaluator) tolerated(h Hotel, brandMatch bool, p profile.UserProfile) bool {
	if !brandMatch || h.NightlyRate < p.HotelBudget.Min {
		return false
	}
	return h.NightlyRate <= p.HotelBudget.Max*(1+e.cfg.OverBudgetTolerance)
}

// budgetFit is 1 at the budget midpoint falling to 0 at either edge.
func budgetFit(rate float64, budget profile.HotelBudget) float64 {
	half := (budget.Max - budget.Min) / 2
	if half <= 0 {
		if rate == budget.Min {
			return 1
		}
		return 0
	}
	return math.Max(0, 1-math.Abs(rate-budget.Midpoint())/half)
}

// SortRanked orders by score, then lower rate, then name.
func SortRanked(ranked []Evaluated) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.NightlyRate != b.NightlyRate {
			return a.NightlyRate < b.NightlyRate
		}
		return a.Name < b.Name
	})
}

// Merge combines results evaluated against different windows into one ranking.
func Merge(results ...Result) Result {
	merged := Result{Ranked: []Evaluated{}, Excluded: []Excluded{}, Anomalies: []Anomaly{}}
	for _, r := range results {
		merged.Ranked = append(merged.Ranked, r.Ranked...)
		merged.Excluded = append(merged.Excluded, r.Excluded...)
		merged.Anomalies = append(merged.Anomalies, r.Anomalies...)
	}
	SortRanked(merged.Ranked)
	return merged
}
