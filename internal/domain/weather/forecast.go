package weather

import (
	"fmt"
	"time"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
	"github.com/yanqian/trip-advisor/pkg/util"
)

const patternLength = 30

// MaxHorizonDays caps how far ahead a forecast may be generated.
const MaxHorizonDays = 365

// GenerateForecast produces a deterministic synthetic forecast starting at start.
// The pattern repeats every 30 days and is the same for every location:
//
//	days  0-6   good weather
//	days  7-11  storm block (StormRisk set)
//	days 12-19  mixed recovery
//	days 20-29  best weather
func GenerateForecast(location string, start time.Time, horizonDays int) ([]DayForecast, error) {
	if horizonDays <= 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "forecast horizon must be positive", nil)
	}
	if horizonDays > MaxHorizonDays {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("forecast horizon cannot exceed %d days", MaxHorizonDays), nil)
	}
	first := util.TruncateDay(start)
	days := make([]DayForecast, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		day := syntheticDay(i % patternLength)
		day.Date = util.FormatDate(first.AddDate(0, 0, i))
		days = append(days, day)
	}
	return days, nil
}

func syntheticDay(phase int) DayForecast {
	switch {
	case phase < 7:
		d := DayForecast{
			HighF:            84 + phase%3,
			LowF:             71 + phase%2,
			PrecipitationPct: 10 + 5*(phase%3),
			WindMph:          8 + phase%4,
			Condition:        ConditionSunny,
		}
		if phase%3 == 2 {
			d.Condition = ConditionPartlyCloudy
		}
		return d
	case phase < 12:
		k := phase - 7
		d := DayForecast{
			HighF:            80 + k%3,
			LowF:             73 + k%2,
			PrecipitationPct: 70 + 5*k,
			WindMph:          18 + 3*k,
			Condition:        ConditionHeavyRain,
			StormRisk:        true,
		}
		if k%2 == 0 {
			d.Condition = ConditionThunderstorm
		}
		return d
	case phase < 20:
		k := phase - 12
		d := DayForecast{
			HighF:            82 + k%4,
			LowF:             72 + k%2,
			PrecipitationPct: 20 + 12*(k%3),
			WindMph:          10 + k%5,
			Condition:        ConditionPartlyCloudy,
		}
		if d.PrecipitationPct > RainyPrecipitationPct {
			d.Condition = ConditionScatteredShowers
		}
		return d
	default:
		k := phase - 20
		d := DayForecast{
			HighF:            80 + k%3,
			LowF:             70 + k%2,
			PrecipitationPct: 5 + 5*(k%2),
			WindMph:          5 + k%3,
			Condition:        ConditionClear,
		}
		if k%2 == 1 {
			d.Condition = ConditionSunny
		}
		return d
	}
}
