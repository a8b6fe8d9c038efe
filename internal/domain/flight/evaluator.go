package flight

import (
	"fmt"
	"math"
	"sort"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
	"github.com/yanqian/trip-advisor/pkg/metrics"
)

// Config holds the scoring weights.
type Config struct {
	BaseScore       float64 `yaml:"baseScore"`
	SoftBudgetBonus float64 `yaml:"softBudgetBonus"`
	PriceWeight     float64 `yaml:"priceWeight"`
	HourPenalty     float64 `yaml:"hourPenalty"`
	StopPenalty     float64 `yaml:"stopPenalty"`
	RedEyePenalty   float64 `yaml:"redEyePenalty"`
}

// DefaultConfig returns the weights used when none are configured.
func DefaultConfig() Config {
	return Config{
		BaseScore:       100,
		SoftBudgetBonus: 25,
		PriceWeight:     30,
		HourPenalty:     3,
		StopPenalty:     10,
		RedEyePenalty:   15,
	}
}

// Evaluator ranks flights against a profile. It holds no state between calls.
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

// Evaluate filters candidates by the hard ceiling, scores the rest and ranks
// them best first. An empty window matches every departure date.
func (e *Evaluator) Evaluate(candidates []Flight, p profile.UserProfile, window weather.Window) Result {
	result := Result{
		Ranked:   make([]Evaluated, 0, len(candidates)),
		Excluded: []Excluded{},
	}
	prices := make([]float64, 0, len(candidates))
	for _, f := range candidates {
		prices = append(prices, f.Price)
		if f.Price > p.FlightBudget.Hard {
			result.Excluded = append(result.Excluded, Excluded{Flight: f, Reason: ReasonOverHardBudget})
			continue
		}
		result.Ranked = append(result.Ranked, e.score(f, p, window))
	}
	result.Prices = metrics.SummarizePrices(prices)

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		a, b := result.Ranked[i], result.Ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return cheaperOrShorter(a, b)
	})
	annotate(result.Ranked)
	return result
}

func (e *Evaluator) score(f Flight, p profile.UserProfile, window weather.Window) Evaluated {
	soft, hard := p.FlightBudget.Soft, p.FlightBudget.Hard
	out := Evaluated{
		Flight:           f,
		WithinSoftBudget: f.Price <= soft,
		WithinHardBudget: true,
		SoftBudgetDelta:  round2(f.Price - soft),
		MatchesWindow:    window.Near(f.DepartureDate, p.FlexibilityDays),
	}

	penalty := e.discomfort(f)
	out.ComfortScore = round2(e.cfg.BaseScore - penalty)

	score := e.cfg.BaseScore
	if out.WithinSoftBudget {
		score += e.cfg.SoftBudgetBonus
		out.Reasons = append(out.Reasons, fmt.Sprintf("within soft budget of $%.0f", soft))
	} else {
		out.Reasons = append(out.Reasons, fmt.Sprintf("$%.0f over soft budget", f.Price-soft))
	}
	if hard > 0 {
		score -= f.Price / hard * e.cfg.PriceWeight
	}
	score -= float64(p.ComfortPriority) / float64(profile.MaxComfortPriority) * penalty
	out.Score = round2(score)

	if f.Direct() {
		out.Reasons = append(out.Reasons, "direct")
	} else {
		out.Reasons = append(out.Reasons, fmt.Sprintf("%d stop(s)", f.Stops))
	}
	if f.RedEye() {
		out.Reasons = append(out.Reasons, "red-eye departure")
	}
	if !out.MatchesWindow {
		out.Reasons = append(out.Reasons, "departs outside the travel window")
	}
	return out
}

// discomfort is the unweighted comfort cost of a flight.
func (e *Evaluator) discomfort(f Flight) float64 {
	hours := float64(f.DurationMinutes) / 60
	penalty := e.cfg.HourPenalty*hours + e.cfg.StopPenalty*float64(f.Stops)
	if f.RedEye() {
		penalty += e.cfg.RedEyePenalty
	}
	return penalty
}

// annotate attaches the categorical notes to an already ranked slice:
// cheapest overall, highest comfort score, and cheapest within the soft budget.
func annotate(ranked []Evaluated) {
	if len(ranked) == 0 {
		return
	}
	cheapest, comfort, value := 0, 0, -1
	for i := range ranked {
		if cheaperOrShorter(ranked[i], ranked[cheapest]) {
			cheapest = i
		}
		if c := ranked[i].ComfortScore; c > ranked[comfort].ComfortScore ||
			(c == ranked[comfort].ComfortScore && cheaperOrShorter(ranked[i], ranked[comfort])) {
			comfort = i
		}
		if ranked[i].WithinSoftBudget && (value < 0 || cheaperOrShorter(ranked[i], ranked[value])) {
			value = i
		}
	}
	ranked[cheapest].Notes = append(ranked[cheapest].Notes, NoteCheapest)
	ranked[comfort].Notes = append(ranked[comfort].Notes, NoteBestComfort)
	if value >= 0 {
		ranked[value].Notes = append(ranked[value].Notes, NoteBestValue)
	}
}

func cheaperOrShorter(a, b Evaluated) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.DurationMinutes < b.DurationMinutes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
