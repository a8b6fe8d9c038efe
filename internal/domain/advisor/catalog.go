package advisor

import (
	"context"

	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
)

// Catalog supplies candidate flights and hotels. Implementations live in infra.
type Catalog interface {
	SearchFlights(ctx context.Context, query FlightQuery) ([]flight.Flight, error)
	SearchHotels(ctx context.Context, query HotelQuery) ([]hotel.Hotel, error)
}

// FlightQuery asks for round trips departing on each of DepartureDates.
type FlightQuery struct {
	Origin         string
	Destination    string
	DepartureDates []string
	Nights         int
}

// HotelQuery asks for stays in Location. StormRisk lets the catalog price the
// storm-period discounts it offers.
type HotelQuery struct {
	Location  string
	CheckIn   string
	CheckOut  string
	StormRisk bool
}
