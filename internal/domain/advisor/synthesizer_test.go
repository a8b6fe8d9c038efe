package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

var forecastStart = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

func seedProfiles() map[string]profile.UserProfile {
	return map[string]profile.UserProfile{
		"alex": {
			ID: "alex", Name: "Alex Chen", TempMinF: 72, TempMaxF: 85,
			FlightBudget:    profile.FlightBudget{Soft: 450, Hard: 650},
			HotelBudget:     profile.HotelBudget{Min: 120, Max: 250},
			PreferredBrands: []string{"Marriott", "Hilton"},
			TripNights:      7, FlexibilityDays: 5, ComfortPriority: 6,
		},
		"jordan": {
			ID: "jordan", Name: "Jordan Rivera", TempMinF: 68, TempMaxF: 80,
			FlightBudget:    profile.FlightBudget{Soft: 600, Hard: 900},
			HotelBudget:     profile.HotelBudget{Min: 200, Max: 400},
			PreferredBrands: []string{"Hyatt", "Four Seasons"},
			TripNights:      5, FlexibilityDays: 2, ComfortPriority: 9,
		},
		"sam": {
			ID: "sam", Name: "Sam Patel", TempMinF: 75, TempMaxF: 90,
			FlightBudget:    profile.FlightBudget{Soft: 800, Hard: 1200},
			HotelBudget:     profile.HotelBudget{Min: 300, Max: 600},
			PreferredBrands: []string{"Four Seasons", "Ritz-Carlton"},
			TripNights:      10, FlexibilityDays: 7, ComfortPriority: 8,
		},
	}
}

func generated(t *testing.T, days int) []weather.DayForecast {
	t.Helper()
	forecasts, err := weather.GenerateForecast("Maui, HI", forecastStart, days)
	require.NoError(t, err)
	return forecasts
}

// uniform builds a storm-free forecast with the same high every day.
func uniform(days, highF int) []weather.DayForecast {
	out := make([]weather.DayForecast, days)
	for i := range out {
		out[i] = weather.DayForecast{
			Date:             forecastStart.AddDate(0, 0, i).Format("2006-01-02"),
			HighF:            highF,
			LowF:             highF - 10,
			PrecipitationPct: 10,
			WindMph:          8,
			Condition:        weather.ConditionSunny,
		}
	}
	return out
}

func undatedOptions(p profile.UserProfile) (flight.Result, hotel.Result) {
	flights := flight.NewEvaluator(flight.DefaultConfig()).Evaluate([]flight.Flight{
		{Carrier: "Hawaiian Airlines", Price: p.FlightBudget.Soft - 50, DurationMinutes: 315, Departure: flight.SlotDaytime},
	}, p, weather.Window{})
	hotels := hotel.NewEvaluator(hotel.DefaultConfig()).Evaluate([]hotel.Hotel{
		{Name: "Budget Fit Inn", Brand: "Independent", NightlyRate: p.HotelBudget.Midpoint(), Rating: 4.2},
	}, p, weather.Window{})
	return flights, hotels
}

func TestSynthesizeMediumWhenSlightlyTooHot(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(14, 87), flights, hotels)
	require.NoError(t, err)
	require.NotNil(t, rec.Window)
	require.Equal(t, ConfidenceMedium, rec.Confidence)
	require.False(t, rec.Compromise)
	require.Equal(t, StatusAvailable, rec.Flight.Status)
	require.Equal(t, StatusAvailable, rec.Hotel.Status)
}

func TestSynthesizeHighWhenEverythingFits(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(14, 80), flights, hotels)
	require.NoError(t, err)
	require.Equal(t, ConfidenceHigh, rec.Confidence)
	require.Len(t, rec.ConfidenceReasons, 3)
	require.Len(t, rec.Alternatives, 2)
}

func TestSynthesizeLowWhenTooHotBeyondMargin(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(14, 95), flights, hotels)
	require.NoError(t, err)
	require.NotNil(t, rec.Window)
	require.Equal(t, ConfidenceLow, rec.Confidence)
	require.True(t, rec.Compromise)
}

func TestSynthesizeMediumAtForecastEdge(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(p.TripNights, 80), flights, hotels)
	require.NoError(t, err)
	require.True(t, rec.Window.Exhaustive)
	require.Equal(t, ConfidenceMedium, rec.Confidence)
	require.Empty(t, rec.Alternatives)
}

func TestSynthesizeHighWhenWindowEndsOnLastForecastDay(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)
	forecasts := uniform(10, 80)
	for i := 0; i < 3; i++ {
		forecasts[i].PrecipitationPct = weather.RainyPrecipitationPct + 30
	}

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, forecasts, flights, hotels)
	require.NoError(t, err)
	require.Equal(t, 3, rec.Window.Offset)
	require.Equal(t, forecasts[len(forecasts)-1].Date, rec.Window.EndDate)
	require.False(t, rec.Window.Exhaustive)
	require.Equal(t, ConfidenceHigh, rec.Confidence)
}

func TestSynthesizeInsufficientData(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	_, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(p.TripNights-1, 80), flights, hotels)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientData))
}

func TestSynthesizeInvalidProfile(t *testing.T) {
	p := seedProfiles()["alex"]
	p.FlightBudget.Soft = 900

	_, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(14, 80), flight.Result{}, hotel.Result{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestSynthesizeMissingOptionsAreUnavailable(t *testing.T) {
	p := seedProfiles()["alex"]

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, uniform(14, 80), flight.Result{}, hotel.Result{})
	require.NoError(t, err)
	require.NotNil(t, rec.Window)
	require.Equal(t, StatusUnavailable, rec.Flight.Status)
	require.Nil(t, rec.Flight.Flight)
	require.Equal(t, StatusUnavailable, rec.Hotel.Status)
	require.Nil(t, rec.Hotel.Hotel)
	require.Equal(t, ConfidenceLow, rec.Confidence)
	require.True(t, rec.Compromise)
}

func TestSynthesizeRejectsStormWindowsForEveryProfile(t *testing.T) {
	forecasts := generated(t, 30)
	synth := NewSynthesizer(DefaultConfig())

	for id, p := range seedProfiles() {
		for _, comfort := range []int{0, p.ComfortPriority, profile.MaxComfortPriority} {
			p.ComfortPriority = comfort
			flights, hotels := undatedOptions(p)
			rec, err := synth.Synthesize(p, forecasts, flights, hotels)
			require.NoError(t, err, id)
			require.NotNil(t, rec.Window, id)
			require.LessOrEqual(t, rec.Window.StormDays, weather.DefaultStormDayThreshold, id)

			windows, err := weather.Windows(forecasts, p.TripNights)
			require.NoError(t, err)
			for _, w := range windows {
				if !w.StormRisk(weather.DefaultStormDayThreshold) {
					continue
				}
				require.True(t, rec.RejectedWindow(w.StartDate()), "%s %s", id, w.Label())
				require.NotEqual(t, w.StartDate(), rec.Window.StartDate, id)
				for _, alt := range rec.Alternatives {
					require.NotEqual(t, w.StartDate(), alt.Window.StartDate, id)
				}
			}
		}
	}
}

func TestSynthesizeChoosesBestBlockForAlex(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, generated(t, 30), flights, hotels)
	require.NoError(t, err)
	require.Equal(t, "2025-07-30", rec.Window.StartDate)
	require.Equal(t, 20, rec.Window.Offset)
	require.Equal(t, ConfidenceHigh, rec.Confidence)

	require.Len(t, rec.Alternatives, 2)
	chosen := weather.NewWindow(rec.Window.Offset, generated(t, 30)[20:27], false)
	var alts []weather.Window
	for _, alt := range rec.Alternatives {
		w := weather.NewWindow(alt.Window.Offset, generated(t, 30)[alt.Window.Offset:alt.Window.Offset+alt.Window.Length], false)
		require.False(t, w.Overlaps(chosen))
		require.NotEmpty(t, alt.Reason)
		alts = append(alts, w)
	}
	require.False(t, alts[0].Overlaps(alts[1]))
}

func TestSynthesizeNoStormSafeWindow(t *testing.T) {
	p := seedProfiles()["alex"]
	forecasts := uniform(10, 80)
	for i := range forecasts {
		forecasts[i].StormRisk = true
		forecasts[i].Condition = weather.ConditionThunderstorm
	}
	flights, hotels := undatedOptions(p)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, forecasts, flights, hotels)
	require.NoError(t, err)
	require.Nil(t, rec.Window)
	require.Equal(t, ConfidenceLow, rec.Confidence)
	require.Len(t, rec.Rejections, 4)
	require.Equal(t, StatusUnavailable, rec.Flight.Status)
}

func TestSynthesizeSkipsStormDiscountForStormyStay(t *testing.T) {
	p := seedProfiles()["alex"]
	forecasts := generated(t, 30)
	hotels := hotel.NewEvaluator(hotel.DefaultConfig()).Evaluate([]hotel.Hotel{
		{Name: "Storm Deal Hilton", Brand: "Hilton", NightlyRate: 185, Rating: 4.9, HasStormDiscount: true, CheckIn: "2025-07-18"},
		{Name: "Plain Courtyard", Brand: "Marriott", NightlyRate: 160, Rating: 3.9, CheckIn: "2025-07-18"},
	}, p, weather.Window{})
	window := weather.NewWindow(12, forecasts[12:19], false)

	pick := NewSynthesizer(DefaultConfig()).pickHotel(hotels.Ranked, window, p, forecasts)
	require.NotNil(t, pick)
	require.Equal(t, "Plain Courtyard", pick.Name)
}

func TestSynthesizeListsOptionRejections(t *testing.T) {
	p := seedProfiles()["alex"]
	forecasts := generated(t, 30)
	storm := weather.NewWindow(5, forecasts[5:12], false)

	flights := flight.NewEvaluator(flight.DefaultConfig()).Evaluate([]flight.Flight{
		{Carrier: "Hawaiian Airlines", FlightNumber: "HA 12", DepartureDate: "2025-07-28", Price: 720, DurationMinutes: 315},
		{Carrier: "Alaska Airlines", FlightNumber: "AS 845", DepartureDate: "2025-07-28", Price: 360, DurationMinutes: 345, Departure: flight.SlotRedEye},
	}, p, weather.Window{})
	hotels := hotel.Merge(
		hotel.NewEvaluator(hotel.DefaultConfig()).Evaluate([]hotel.Hotel{
			{Name: "Four Seasons Resort Maui", Brand: "Four Seasons", NightlyRate: 550, Rating: 4.8},
		}, p, weather.Window{}),
		hotel.NewEvaluator(hotel.DefaultConfig()).Evaluate([]hotel.Hotel{
			{Name: "Hilton Garden Inn", Brand: "Hilton", NightlyRate: 153, Rating: 4.0, HasStormDiscount: true, CheckIn: "2025-07-15"},
		}, p, storm),
	)

	rec, err := NewSynthesizer(DefaultConfig()).Synthesize(p, forecasts, flights, hotels)
	require.NoError(t, err)

	kinds := map[RejectionKind]int{}
	for _, r := range rec.Rejections {
		kinds[r.Kind]++
	}
	require.Equal(t, 1, kinds[RejectFlight])
	require.Equal(t, 2, kinds[RejectHotel])
	require.Equal(t, 9, kinds[RejectWindow])
}

func TestSynthesizeRejectsHotPeriod(t *testing.T) {
	p := seedProfiles()["alex"]
	flights, hotels := undatedOptions(p)
	synth := NewSynthesizer(DefaultConfig())

	forecasts := uniform(21, 80)
	for i := 14; i < 19; i++ {
		forecasts[i].HighF = p.TempMaxF + HotDayMarginF + 3
	}
	rec, err := synth.Synthesize(p, forecasts, flights, hotels)
	require.NoError(t, err)

	var hot []Rejection
	for _, r := range rec.Rejections {
		if r.Kind == RejectForecast {
			hot = append(hot, r)
		}
	}
	require.Len(t, hot, 1)
	require.Equal(t, "2025-07-24 to 2025-07-28", hot[0].Subject)
	require.Equal(t, "5 days above 90°F", hot[0].Reason)
	require.NotNil(t, rec.Window)
	require.Equal(t, 0, rec.Window.Offset)

	forecasts = uniform(21, 80)
	for i := 14; i < 14+HotDayLimit; i++ {
		forecasts[i].HighF = p.TempMaxF + HotDayMarginF + 3
	}
	forecasts[20].HighF = p.TempMaxF + HotDayMarginF
	rec, err = synth.Synthesize(p, forecasts, flights, hotels)
	require.NoError(t, err)
	for _, r := range rec.Rejections {
		require.NotEqual(t, RejectForecast, r.Kind)
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	p := seedProfiles()["jordan"]
	flights, hotels := undatedOptions(p)
	synth := NewSynthesizer(DefaultConfig())

	first, err := synth.Synthesize(p, generated(t, 30), flights, hotels)
	require.NoError(t, err)
	second, err := synth.Synthesize(p, generated(t, 30), flights, hotels)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
