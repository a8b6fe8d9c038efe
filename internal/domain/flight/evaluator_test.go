package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
)

func alexProfile() profile.UserProfile {
	return profile.UserProfile{
		ID:              "alex",
		TempMinF:        72,
		TempMaxF:        85,
		FlightBudget:    profile.FlightBudget{Soft: 450, Hard: 650},
		HotelBudget:     profile.HotelBudget{Min: 120, Max: 250},
		TripNights:      7,
		FlexibilityDays: 5,
		ComfortPriority: 6,
	}
}

func scenarioFlights() []Flight {
	return []Flight{
		{Carrier: "Hawaiian Airlines", FlightNumber: "HA 101", Price: 620, DurationMinutes: 315, Departure: SlotMorning},
		{Carrier: "United Airlines", FlightNumber: "UA 202", Price: 289, Stops: 1, DurationMinutes: 510, Departure: SlotMorning},
		{Carrier: "Hawaiian Airlines", FlightNumber: "HA 303", Price: 467, DurationMinutes: 315, Departure: SlotDaytime},
		{Carrier: "Alaska Airlines", FlightNumber: "AS 404", Price: 338, DurationMinutes: 345, Departure: SlotRedEye},
	}
}

func findByPrice(t *testing.T, ranked []Evaluated, price float64) Evaluated {
	t.Helper()
	for _, e := range ranked {
		if e.Price == price {
			return e
		}
	}
	t.Fatalf("no ranked flight priced %.0f", price)
	return Evaluated{}
}

func TestEvaluateTwoTierBudgetScenario(t *testing.T) {
	result := NewEvaluator(DefaultConfig()).Evaluate(scenarioFlights(), alexProfile(), weather.Window{})

	require.Empty(t, result.Excluded)
	require.Len(t, result.Ranked, 4)
	require.True(t, findByPrice(t, result.Ranked, 289).WithinSoftBudget)
	require.True(t, findByPrice(t, result.Ranked, 338).WithinSoftBudget)
	for _, price := range []float64{467, 620} {
		e := findByPrice(t, result.Ranked, price)
		require.False(t, e.WithinSoftBudget)
		require.True(t, e.WithinHardBudget)
		require.Greater(t, e.SoftBudgetDelta, 0.0)
	}
	require.Equal(t, -161.0, findByPrice(t, result.Ranked, 289).SoftBudgetDelta)
	require.Equal(t, 2, result.WithinSoftCount())

	require.Equal(t, 4, result.Prices.Count)
	require.Equal(t, 289.0, result.Prices.Min)
	require.Equal(t, 620.0, result.Prices.Max)
	require.Equal(t, 428.5, result.Prices.Average)
}

func TestEvaluateExcludesOverHardBudget(t *testing.T) {
	flights := append(scenarioFlights(), Flight{Carrier: "Luxury Air", Price: 700, DurationMinutes: 300})

	result := NewEvaluator(DefaultConfig()).Evaluate(flights, alexProfile(), weather.Window{})

	require.Len(t, result.Excluded, 1)
	require.Equal(t, 700.0, result.Excluded[0].Flight.Price)
	require.Equal(t, ReasonOverHardBudget, result.Excluded[0].Reason)
	for _, e := range result.Ranked {
		require.LessOrEqual(t, e.Price, 650.0)
	}
	require.Equal(t, 5, result.Prices.Count)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	evaluator := NewEvaluator(DefaultConfig())
	first := evaluator.Evaluate(scenarioFlights(), alexProfile(), weather.Window{})
	second := evaluator.Evaluate(scenarioFlights(), alexProfile(), weather.Window{})
	require.Equal(t, first, second)
}

func TestSoftBudgetNeverScoresLower(t *testing.T) {
	p := alexProfile()
	base := Flight{Carrier: "Hawaiian Airlines", DurationMinutes: 315, Departure: SlotDaytime}
	evaluator := NewEvaluator(DefaultConfig())

	for _, pair := range [][2]float64{{450, 451}, {449, 451}, {300, 600}, {450, 650}} {
		under, over := base, base
		under.Price, over.Price = pair[0], pair[1]
		result := evaluator.Evaluate([]Flight{over, under}, p, weather.Window{})
		require.Equal(t, pair[0], result.Ranked[0].Price)
		require.Greater(t, result.Ranked[0].Score, result.Ranked[1].Score)
	}
}

func TestComfortPenaltyScalesWithPriority(t *testing.T) {
	daytime := Flight{Carrier: "Hawaiian Airlines", Price: 400, DurationMinutes: 315, Departure: SlotDaytime}
	redEye := Flight{Carrier: "Alaska Airlines", Price: 400, DurationMinutes: 315, Departure: SlotRedEye}
	evaluator := NewEvaluator(DefaultConfig())

	gap := func(comfort int) float64 {
		p := alexProfile()
		p.ComfortPriority = comfort
		result := evaluator.Evaluate([]Flight{daytime, redEye}, p, weather.Window{})
		require.Equal(t, SlotDaytime, result.Ranked[0].Departure)
		return result.Ranked[0].Score - result.Ranked[1].Score
	}
	require.Greater(t, gap(10), gap(2))

	p := alexProfile()
	p.ComfortPriority = 0
	result := evaluator.Evaluate([]Flight{daytime, redEye}, p, weather.Window{})
	require.Equal(t, result.Ranked[0].Score, result.Ranked[1].Score)
}

func TestEvaluateNotes(t *testing.T) {
	result := NewEvaluator(DefaultConfig()).Evaluate(scenarioFlights(), alexProfile(), weather.Window{})

	require.True(t, findByPrice(t, result.Ranked, 289).HasNote(NoteCheapest))
	require.True(t, findByPrice(t, result.Ranked, 467).HasNote(NoteBestComfort))

	var value []Evaluated
	for _, e := range result.Ranked {
		if e.HasNote(NoteBestValue) {
			value = append(value, e)
		}
	}
	require.Len(t, value, 1)
	require.True(t, value[0].WithinSoftBudget)
	for _, e := range result.Ranked {
		if e.WithinSoftBudget {
			require.LessOrEqual(t, value[0].Price, e.Price)
		}
	}
}

func TestEvaluateBestValueIsCheapestWithinSoft(t *testing.T) {
	p := alexProfile()
	p.ComfortPriority = 9
	flights := []Flight{
		{Carrier: "Alaska Airlines", FlightNumber: "AS 801", Price: 289, Stops: 1, DurationMinutes: 510, Departure: SlotRedEye},
		{Carrier: "Hawaiian Airlines", FlightNumber: "HA 12", Price: 338, DurationMinutes: 315, Departure: SlotMorning},
		{Carrier: "United Airlines", FlightNumber: "UA 1701", Price: 467, DurationMinutes: 345, Departure: SlotDaytime},
	}

	result := NewEvaluator(DefaultConfig()).Evaluate(flights, p, weather.Window{})

	redEye := findByPrice(t, result.Ranked, 289)
	require.True(t, redEye.HasNote(NoteCheapest))
	require.True(t, redEye.HasNote(NoteBestValue))
	direct := findByPrice(t, result.Ranked, 338)
	require.True(t, direct.HasNote(NoteBestComfort))
	require.False(t, direct.HasNote(NoteBestValue))
	require.Empty(t, findByPrice(t, result.Ranked, 467).Notes)
}

func TestEvaluateBestValueTieBreaksOnDuration(t *testing.T) {
	flights := []Flight{
		{Carrier: "United Airlines", FlightNumber: "UA 1", Price: 400, Stops: 1, DurationMinutes: 510},
		{Carrier: "Hawaiian Airlines", FlightNumber: "HA 2", Price: 400, DurationMinutes: 315},
	}

	result := NewEvaluator(DefaultConfig()).Evaluate(flights, alexProfile(), weather.Window{})

	for _, e := range result.Ranked {
		require.Equal(t, e.FlightNumber == "HA 2", e.HasNote(NoteBestValue), e.FlightNumber)
	}
}

func TestEvaluateNotesSkipBestValueWhenNothingUnderSoft(t *testing.T) {
	p := alexProfile()
	p.FlightBudget.Soft = 100

	result := NewEvaluator(DefaultConfig()).Evaluate(scenarioFlights(), p, weather.Window{})
	for _, e := range result.Ranked {
		require.False(t, e.HasNote(NoteBestValue))
	}
}

func TestEvaluateEmptyCandidates(t *testing.T) {
	result := NewEvaluator(Config{}).Evaluate(nil, alexProfile(), weather.Window{})
	require.Empty(t, result.Ranked)
	require.Empty(t, result.Excluded)
	require.True(t, result.Prices.IsZero())
}

func TestEvaluateMatchesWindow(t *testing.T) {
	forecasts, err := weather.GenerateForecast("Maui, HI", time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC), 30)
	require.NoError(t, err)
	window := weather.NewWindow(20, forecasts[20:27], false)

	near := Flight{Carrier: "Hawaiian Airlines", DepartureDate: "2025-07-28", Price: 400, DurationMinutes: 315}
	far := Flight{Carrier: "Hawaiian Airlines", DepartureDate: "2025-07-10", Price: 400, DurationMinutes: 315}

	result := NewEvaluator(DefaultConfig()).Evaluate([]Flight{near, far}, alexProfile(), window)
	for _, e := range result.Ranked {
		require.Equal(t, e.DepartureDate == "2025-07-28", e.MatchesWindow)
	}
}
