package profile

import (
	"strings"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

// MaxComfortPriority is the top of the comfort-priority scale.
const MaxComfortPriority = 10

// UserProfile is a traveler's preferences and constraints. It is read-only for
// the duration of a request.
type UserProfile struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	TempMinF        int          `json:"tempMinF" yaml:"tempMinF"`
	TempMaxF        int          `json:"tempMaxF" yaml:"tempMaxF"`
	FlightBudget    FlightBudget `json:"flightBudget" yaml:"flightBudget"`
	HotelBudget     HotelBudget  `json:"hotelBudget" yaml:"hotelBudget"`
	PreferredBrands []string     `json:"preferredBrands" yaml:"preferredBrands"`
	TripNights      int          `json:"tripNights" yaml:"tripNights"`
	FlexibilityDays int          `json:"flexibilityDays" yaml:"flexibilityDays"`
	ComfortPriority int          `json:"comfortPriority" yaml:"comfortPriority"`
}

// FlightBudget is the two-tier airfare limit. Exceeding Soft is a trade-off,
// exceeding Hard removes the option.
type FlightBudget struct {
	Soft float64 `json:"soft" yaml:"soft"`
	Hard float64 `json:"hard" yaml:"hard"`
}

// HotelBudget is the acceptable nightly rate range.
type HotelBudget struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Midpoint returns the center of the nightly budget range.
func (b HotelBudget) Midpoint() float64 {
	return (b.Min + b.Max) / 2
}

// Contains reports whether rate lies within [Min, Max].
func (b HotelBudget) Contains(rate float64) bool {
	return rate >= b.Min && rate <= b.Max
}

// InComfortRange reports whether a temperature sits within the profile range.
func (p UserProfile) InComfortRange(tempF float64) bool {
	return tempF >= float64(p.TempMinF) && tempF <= float64(p.TempMaxF)
}

// DegreesOutside returns how far tempF lies outside the comfort range, or 0.
func (p UserProfile) DegreesOutside(tempF float64) float64 {
	switch {
	case tempF < float64(p.TempMinF):
		return float64(p.TempMinF) - tempF
	case tempF > float64(p.TempMaxF):
		return tempF - float64(p.TempMaxF)
	default:
		return 0
	}
}

// PrefersBrand matches brand case-insensitively against the preferred brands.
func (p UserProfile) PrefersBrand(brand string) bool {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return false
	}
	for _, b := range p.PreferredBrands {
		if strings.EqualFold(strings.TrimSpace(b), brand) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate stored profiles.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.PreferredBrands != nil {
		out.PreferredBrands = append([]string(nil), p.PreferredBrands...)
	}
	return out
}

// Validate checks the record invariants.
func (p UserProfile) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return apperrors.Wrap(apperrors.CodeInvalidInput, "profile id cannot be empty", nil)
	case p.TempMinF > p.TempMaxF:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "temperature min cannot exceed max", nil)
	case p.FlightBudget.Soft < 0 || p.FlightBudget.Soft > p.FlightBudget.Hard:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "flight soft ceiling must be between 0 and the hard ceiling", nil)
	case p.HotelBudget.Min < 0 || p.HotelBudget.Min > p.HotelBudget.Max:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "hotel budget min must be between 0 and max", nil)
	case p.TripNights <= 0:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "trip length must be positive", nil)
	case p.FlexibilityDays < 0:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "flexibility cannot be negative", nil)
	case p.ComfortPriority < 0 || p.ComfortPriority > MaxComfortPriority:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "comfort priority must be within 0..10", nil)
	}
	return nil
}
