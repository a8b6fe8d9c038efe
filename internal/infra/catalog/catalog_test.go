package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
	"github.com/yanqian/trip-advisor/internal/domain/flight"
	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

func TestSearchFlightsIsDeterministic(t *testing.T) {
	c := New(42)
	query := advisor.FlightQuery{Origin: "SFO", Destination: "OGG", DepartureDates: []string{"2025-07-10", "2025-07-12", "2025-07-13"}, Nights: 7}

	first, err := c.SearchFlights(context.Background(), query)
	require.NoError(t, err)
	second, err := c.SearchFlights(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSearchFlightsShapes(t *testing.T) {
	c := New(42)
	// 2025-07-10 is a Thursday, 2025-07-12 a Saturday.
	flights, err := c.SearchFlights(context.Background(), advisor.FlightQuery{
		Origin: "SFO", Destination: "OGG", DepartureDates: []string{"2025-07-10", "2025-07-12"}, Nights: 7,
	})
	require.NoError(t, err)
	require.Len(t, flights, 4)

	for _, f := range flights {
		require.Equal(t, "SFO", f.Origin)
		require.NotEmpty(t, f.FlightNumber)
		switch f.Carrier {
		case "Hawaiian Airlines":
			require.True(t, f.Direct())
			require.Equal(t, flight.SlotMorning, f.Departure)
		case "Alaska Airlines":
			require.True(t, f.RedEye())
		case "United Airlines":
			require.Equal(t, 1, f.Stops)
		}
		if f.DepartureDate == "2025-07-10" {
			require.Equal(t, "2025-07-17", f.ReturnDate)
			if f.Carrier == "Hawaiian Airlines" {
				require.GreaterOrEqual(t, f.Price, 420.0)
				require.LessOrEqual(t, f.Price, 580.0)
			}
		} else if f.Carrier == "Hawaiian Airlines" {
			require.GreaterOrEqual(t, f.Price, 500.0)
		}
	}
}

func TestSearchFlightsRejectsBadDate(t *testing.T) {
	_, err := New(1).SearchFlights(context.Background(), advisor.FlightQuery{DepartureDates: []string{"soon"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestSearchHotelsStormDiscounts(t *testing.T) {
	c := New(42)
	calm, err := c.SearchHotels(context.Background(), advisor.HotelQuery{Location: "Maui, HI", CheckIn: "2025-07-17", CheckOut: "2025-07-24"})
	require.NoError(t, err)
	stormy, err := c.SearchHotels(context.Background(), advisor.HotelQuery{Location: "Maui, HI", CheckIn: "2025-07-17", CheckOut: "2025-07-24", StormRisk: true})
	require.NoError(t, err)
	require.Len(t, calm, 7)
	require.Len(t, stormy, 7)

	for i := range calm {
		require.False(t, calm[i].HasStormDiscount)
		base := float64(mauiProperties[i].baseRate)
		require.InDelta(t, base, calm[i].NightlyRate, base*0.05+1)
		switch {
		case mauiProperties[i].baseRate > 200:
			require.True(t, stormy[i].HasStormDiscount, stormy[i].Name)
			require.NotEmpty(t, stormy[i].DiscountReason)
			require.Less(t, stormy[i].NightlyRate, calm[i].NightlyRate)
		default:
			require.False(t, stormy[i].HasStormDiscount, stormy[i].Name)
			require.Equal(t, calm[i].NightlyRate, stormy[i].NightlyRate)
		}
	}
}
