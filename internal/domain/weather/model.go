package weather

import (
	"math"

	"github.com/yanqian/trip-advisor/pkg/util"
)

// Condition is the categorical sky condition of a forecast day.
type Condition string

const (
	ConditionClear            Condition = "clear"
	ConditionSunny            Condition = "sunny"
	ConditionPartlyCloudy     Condition = "partly_cloudy"
	ConditionScatteredShowers Condition = "scattered_showers"
	ConditionRain             Condition = "rain"
	ConditionHeavyRain        Condition = "heavy_rain"
	ConditionThunderstorm     Condition = "thunderstorm"
)

const (
	// RainyPrecipitationPct is the precipitation chance above which a day counts as rainy.
	RainyPrecipitationPct = 40
	// DefaultStormDayThreshold is the storm-day count a window may contain before it
	// is considered at storm risk.
	DefaultStormDayThreshold = 1
)

// DayForecast is one synthetic forecast day. Immutable once generated.
type DayForecast struct {
	Date             string    `json:"date"`
	HighF            int       `json:"highF"`
	LowF             int       `json:"lowF"`
	PrecipitationPct int       `json:"precipitationPct"`
	WindMph          int       `json:"windMph"`
	Condition        Condition `json:"condition"`
	StormRisk        bool      `json:"stormRisk"`
}

// Rainy reports a wet day.
func (d DayForecast) Rainy() bool {
	if d.PrecipitationPct > RainyPrecipitationPct {
		return true
	}
	switch d.Condition {
	case ConditionRain, ConditionHeavyRain, ConditionThunderstorm:
		return true
	}
	return false
}

// Stormy reports a day with severe weather risk.
func (d DayForecast) Stormy() bool {
	return d.StormRisk || d.Condition == ConditionThunderstorm
}

// Window is a contiguous run of forecast days equal to the trip length.
// Windows are recomputed, never edited.
type Window struct {
	Offset     int           `json:"offset"`
	Days       []DayForecast `json:"days"`
	AvgHighF   float64       `json:"avgHighF"`
	AvgLowF    float64       `json:"avgLowF"`
	RainyDays  int           `json:"rainyDays"`
	StormDays  int           `json:"stormDays"`
	Score      float64       `json:"score"`
	Exhaustive bool          `json:"exhaustive"`
}

// NewWindow copies days and derives the aggregate attributes and generic score.
// Exhaustive marks a window that spans the whole horizon.
func NewWindow(offset int, days []DayForecast, exhaustive bool) Window {
	w := Window{
		Offset:     offset,
		Days:       append([]DayForecast(nil), days...),
		Exhaustive: exhaustive,
	}
	if len(days) == 0 {
		return w
	}
	var highs, lows int
	for _, d := range days {
		highs += d.HighF
		lows += d.LowF
		if d.Rainy() {
			w.RainyDays++
		}
		if d.Stormy() {
			w.StormDays++
		}
	}
	w.AvgHighF = round1(float64(highs) / float64(len(days)))
	w.AvgLowF = round1(float64(lows) / float64(len(days)))
	w.Score = GenericScore(days)
	return w
}

// Len is the number of days in the window.
func (w Window) Len() int {
	return len(w.Days)
}

// IsZero reports an empty window, used by callers that evaluate without one.
func (w Window) IsZero() bool {
	return len(w.Days) == 0
}

// StartDate returns the first day of the window.
func (w Window) StartDate() string {
	if len(w.Days) == 0 {
		return ""
	}
	return w.Days[0].Date
}

// EndDate returns the last day of the window.
func (w Window) EndDate() string {
	if len(w.Days) == 0 {
		return ""
	}
	return w.Days[len(w.Days)-1].Date
}

// Label renders the date range, e.g. "2025-07-30 to 2025-08-05".
func (w Window) Label() string {
	return w.StartDate() + " to " + w.EndDate()
}

// StormRisk reports whether the storm-day count exceeds threshold.
func (w Window) StormRisk(threshold int) bool {
	return w.StormDays > threshold
}

// Overlaps reports whether two windows share at least one date.
func (w Window) Overlaps(other Window) bool {
	if w.IsZero() || other.IsZero() {
		return false
	}
	return w.StartDate() <= other.EndDate() && other.StartDate() <= w.EndDate()
}

// Near reports whether date falls within flexDays of the window start. Undated
// options and empty windows match everything.
func (w Window) Near(date string, flexDays int) bool {
	if date == "" || w.IsZero() {
		return true
	}
	diff, err := util.DaysBetween(w.StartDate(), date)
	if err != nil {
		return false
	}
	if diff < 0 {
		diff = -diff
	}
	return diff <= flexDays
}

// StormDaysBetween counts storm days dated within [from, to].
func StormDaysBetween(forecasts []DayForecast, from, to string) int {
	count := 0
	for _, d := range forecasts {
		if d.Date >= from && d.Date <= to && d.Stormy() {
			count++
		}
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
