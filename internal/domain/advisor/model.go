package advisor

import (
	"strings"

	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
)

// Confidence is the coarse self-assessment of a recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Supporting option statuses.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// RejectionKind names what was rejected.
type RejectionKind string

const (
	RejectWindow   RejectionKind = "window"
	RejectFlight   RejectionKind = "flight"
	RejectHotel    RejectionKind = "hotel"
	RejectForecast RejectionKind = "forecast"
)

// A forecast with more than HotDayLimit days hotter than the profile's
// maximum plus HotDayMarginF gets a forecast-level rejection.
const (
	HotDayMarginF = 5
	HotDayLimit   = 3
)

// Config wires the thresholds and defaults for the advisor domain.
type Config struct {
	DefaultLocation          string
	DefaultOrigin            string
	DestinationAirport       string
	HorizonDays              int
	MaxHorizonDays           int
	MaxConcurrentSearches    int
	SearchStepDays           int
	StormDayThreshold        int
	TemperatureMargin        float64
	MaxAlternatives          int
	HotelOverBudgetTolerance float64
}

// DefaultConfig mirrors configs/config.yaml.
func DefaultConfig() Config {
	return Config{
		DefaultLocation:          "Maui, HI",
		DefaultOrigin:            "SFO",
		DestinationAirport:       "OGG",
		HorizonDays:              30,
		MaxHorizonDays:           weather.MaxHorizonDays,
		MaxConcurrentSearches:    8,
		SearchStepDays:           3,
		StormDayThreshold:        weather.DefaultStormDayThreshold,
		TemperatureMargin:        3,
		MaxAlternatives:          2,
		HotelOverBudgetTolerance: 0.15,
	}
}

// WindowSummary is the trimmed view of a window carried by a recommendation.
type WindowSummary struct {
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Offset       int     `json:"offset"`
	Length       int     `json:"length"`
	AvgHighF     float64 `json:"avgHighF"`
	AvgLowF      float64 `json:"avgLowF"`
	RainyDays    int     `json:"rainyDays"`
	StormDays    int     `json:"stormDays"`
	Score        float64 `json:"score"`
	GenericScore float64 `json:"genericScore"`
	Exhaustive   bool    `json:"exhaustive"`
}

// SupportingFlight is the flight paired with a window. Flight is nil when
// Status is unavailable.
type SupportingFlight struct {
	Status string            `json:"status"`
	Flight *flight.Evaluated `json:"flight,omitempty"`
	Note   string            `json:"note,omitempty"`
}

// SupportingHotel is the hotel paired with a window. Hotel is nil when Status
// is unavailable.
type SupportingHotel struct {
	Status string           `json:"status"`
	Hotel  *hotel.Evaluated `json:"hotel,omitempty"`
	Note   string           `json:"note,omitempty"`
}

// Alternative is a runner-up window with its own supporting picks.
type Alternative struct {
	Window WindowSummary    `json:"window"`
	Reason string           `json:"reason"`
	Flight SupportingFlight `json:"flight"`
	Hotel  SupportingHotel  `json:"hotel"`
}

// Rejection records a window or option that was ruled out.
type Rejection struct {
	Kind    RejectionKind `json:"kind"`
	Subject string        `json:"subject"`
	Reason  string        `json:"reason"`
}

// Recommendation is built once per request and never persisted.
type Recommendation struct {
	ID                string           `json:"id,omitempty"`
	UserID            string           `json:"userId"`
	GeneratedAt       string           `json:"generatedAt,omitempty"`
	Window            *WindowSummary   `json:"window"`
	Confidence        Confidence       `json:"confidence"`
	ConfidenceReasons []string         `json:"confidenceReasons"`
	Compromise        bool             `json:"compromise"`
	Flight            SupportingFlight `json:"flight"`
	Hotel             SupportingHotel  `json:"hotel"`
	Alternatives      []Alternative    `json:"alternatives"`
	Rejections        []Rejection      `json:"rejections"`
}

// RejectedWindow reports whether a window starting at startDate was rejected.
func (r Recommendation) RejectedWindow(startDate string) bool {
	for _, rej := range r.Rejections {
		if rej.Kind == RejectWindow && strings.HasPrefix(rej.Subject, startDate) {
			return true
		}
	}
	return false
}

// ForecastRequest asks for a synthetic forecast. Zero Days means the
// configured horizon; an empty StartDate means today.
type ForecastRequest struct {
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	Days      int    `json:"days"`
}

// ForecastResponse carries the generated days.
type ForecastResponse struct {
	Location  string                `json:"location"`
	StartDate string                `json:"startDate"`
	Days      []weather.DayForecast `json:"days"`
}

// WindowsRequest asks for the best and worst window of a forecast.
type WindowsRequest struct {
	Forecasts  []weather.DayForecast `json:"forecasts"`
	TripLength int                   `json:"tripLength"`
}

// WindowsResponse is the generic best/worst search outcome.
type WindowsResponse struct {
	Best       weather.Window `json:"best"`
	Worst      weather.Window `json:"worst"`
	Candidates int            `json:"candidates"`
	Exhaustive bool           `json:"exhaustive"`
}

// FlightsRequest evaluates candidates for a user against the given window days.
type FlightsRequest struct {
	UserID     string                `json:"userId"`
	Candidates []flight.Flight       `json:"candidates"`
	Window     []weather.DayForecast `json:"window"`
}

// HotelsRequest evaluates candidates for a user against the given window days.
type HotelsRequest struct {
	UserID     string                `json:"userId"`
	Candidates []hotel.Hotel         `json:"candidates"`
	Window     []weather.DayForecast `json:"window"`
}

// SynthesizeRequest combines precomputed evaluations into a recommendation.
type SynthesizeRequest struct {
	UserID    string                `json:"userId"`
	Forecasts []weather.DayForecast `json:"forecasts"`
	Flights   flight.Result         `json:"flights"`
	Hotels    hotel.Result          `json:"hotels"`
}

// RecommendRequest runs the full pipeline over the synthetic catalog.
type RecommendRequest struct {
	UserID    string `json:"userId"`
	Location  string `json:"location"`
	Origin    string `json:"origin"`
	StartDate string `json:"startDate"`
	Days      int    `json:"days"`
}
