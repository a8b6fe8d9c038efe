package flight

import "github.com/yanqian/trip-advisor/pkg/metrics"

// Slot is the departure time-of-day category.
type Slot string

const (
	SlotRedEye  Slot = "red_eye"
	SlotMorning Slot = "morning"
	SlotDaytime Slot = "daytime"
	SlotEvening Slot = "evening"
)

// Categorical notes attached to ranked flights.
const (
	NoteBestValue   = "best value"
	NoteCheapest    = "cheapest"
	NoteBestComfort = "best comfort"
)

// ReasonOverHardBudget is the exclusion reason for flights above the hard ceiling.
const ReasonOverHardBudget = "over hard budget"

// Flight is a candidate round trip quoted in USD.
type Flight struct {
	Carrier         string  `json:"carrier"`
	FlightNumber    string  `json:"flightNumber,omitempty"`
	Origin          string  `json:"origin,omitempty"`
	Destination     string  `json:"destination,omitempty"`
	DepartureDate   string  `json:"departureDate,omitempty"`
	ReturnDate      string  `json:"returnDate,omitempty"`
	Price           float64 `json:"price"`
	Stops           int     `json:"stops"`
	DurationMinutes int     `json:"durationMinutes"`
	Departure       Slot    `json:"departure"`
}

// Direct reports a nonstop flight.
func (f Flight) Direct() bool {
	return f.Stops == 0
}

// RedEye reports an overnight departure.
func (f Flight) RedEye() bool {
	return f.Departure == SlotRedEye
}

// Label identifies the flight in rejections and logs.
func (f Flight) Label() string {
	label := f.Carrier
	if f.FlightNumber != "" {
		label += " " + f.FlightNumber
	}
	if f.DepartureDate != "" {
		label += " on " + f.DepartureDate
	}
	return label
}

// Evaluated is a flight scored against one profile.
type Evaluated struct {
	Flight
	WithinSoftBudget bool     `json:"withinSoftBudget"`
	WithinHardBudget bool     `json:"withinHardBudget"`
	SoftBudgetDelta  float64  `json:"softBudgetDelta"`
	ComfortScore     float64  `json:"comfortScore"`
	Score            float64  `json:"score"`
	MatchesWindow    bool     `json:"matchesWindow"`
	Notes            []string `json:"notes,omitempty"`
	Reasons          []string `json:"reasons,omitempty"`
}

// HasNote reports whether note was attached.
func (e Evaluated) HasNote(note string) bool {
	for _, n := range e.Notes {
		if n == note {
			return true
		}
	}
	return false
}

// Excluded is a flight removed from ranking, kept visible with its reason.
type Excluded struct {
	Flight Flight `json:"flight"`
	Reason string `json:"reason"`
}

// Result is the outcome of one evaluation pass.
type Result struct {
	Ranked   []Evaluated          `json:"ranked"`
	Excluded []Excluded           `json:"excluded"`
	Prices   metrics.PriceSummary `json:"prices"`
}

// WithinSoftCount counts ranked flights at or under the soft ceiling.
func (r Result) WithinSoftCount() int {
	count := 0
	for _, e := range r.Ranked {
		if e.WithinSoftBudget {
			count++
		}
	}
	return count
}
