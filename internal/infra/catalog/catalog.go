package catalog

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
	"github.com/yanqian/trip-advisor/pkg/util"
)

const weekendSurcharge = 80

// Catalog is a deterministic synthetic flight and hotel inventory. Every
// search derives its own seeded generator, so identical queries return
// identical options and concurrent searches share no state.
type Catalog struct {
	seed int64
}

// New builds a catalog; the seed shifts every generated price.
func New(seed int64) *Catalog {
	return &Catalog{seed: seed}
}

// SearchFlights returns up to three options per departure date: a premium
// direct daytime flight, a cheaper red-eye and, on alternating weekdays, a
// one-stop connection. Weekend departures cost more.
func (c *Catalog) SearchFlights(ctx context.Context, q advisor.FlightQuery) ([]flight.Flight, error) {
	fake := c.faker(q.Origin, q.Destination)
	options := make([]flight.Flight, 0, len(q.DepartureDates)*3)
	for _, date := range q.DepartureDates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day, err := util.ParseDate(date)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "departure date must be formatted as YYYY-MM-DD", err)
		}
		returnDate := util.FormatDate(day.AddDate(0, 0, q.Nights))
		surcharge := 0
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			surcharge = weekendSurcharge
		}
		leg := flight.Flight{
			Origin:        q.Origin,
			Destination:   q.Destination,
			DepartureDate: date,
			ReturnDate:    returnDate,
		}

		direct := leg
		direct.Carrier = "Hawaiian Airlines"
		direct.FlightNumber = fake.Numerify("HA ##")
		direct.Price = float64(fake.IntBetween(420, 580) + surcharge)
		direct.DurationMinutes = 315
		direct.Departure = flight.SlotMorning
		options = append(options, direct)

		redEye := leg
		redEye.Carrier = "Alaska Airlines"
		redEye.FlightNumber = fake.Numerify("AS 8##")
		redEye.Price = float64(fake.IntBetween(320, 450) + surcharge)
		redEye.DurationMinutes = 345
		redEye.Departure = flight.SlotRedEye
		options = append(options, redEye)

		if int(day.Weekday())%2 == 1 {
			connection := leg
			connection.Carrier = "United Airlines"
			connection.FlightNumber = fake.Numerify("UA 1###")
			connection.Price = float64(fake.IntBetween(280, 400) + surcharge)
			connection.Stops = 1
			connection.DurationMinutes = 510
			connection.Departure = flight.SlotDaytime
			options = append(options, connection)
		}
	}
	return options, nil
}

type property struct {
	name     string
	brand    string
	baseRate int
	rating   float64
	location string
}

var mauiProperties = []property{
	{name: "Marriott Wailea Beach Resort", brand: "Marriott", baseRate: 280, rating: 4.3, location: "Wailea Beach"},
	{name: "Grand Hyatt Maui", brand: "Hyatt", baseRate: 350, rating: 4.6, location: "Ka'anapali"},
	{name: "Four Seasons Resort Maui", brand: "Four Seasons", baseRate: 550, rating: 4.8, location: "Wailea"},
	{name: "Hilton Garden Inn Maui", brand: "Hilton", baseRate: 180, rating: 4.0, location: "Kahului"},
	{name: "Ritz-Carlton Kapalua", brand: "Ritz-Carlton", baseRate: 480, rating: 4.7, location: "Kapalua Bay"},
	{name: "Courtyard by Marriott Maui", brand: "Marriott", baseRate: 160, rating: 3.9, location: "Kahului"},
	{name: "Andaz Maui at Wailea", brand: "Hyatt", baseRate: 420, rating: 4.5, location: "Wailea"},
}

// SearchHotels prices every property for the stay. During storm risk the
// pricier properties discount: 30% above $300 a night, 15% above $200.
func (c *Catalog) SearchHotels(ctx context.Context, q advisor.HotelQuery) ([]hotel.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := util.ParseDate(q.CheckIn); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "checkIn must be formatted as YYYY-MM-DD", err)
	}
	fake := c.faker(q.Location, q.CheckIn)
	options := make([]hotel.Hotel, 0, len(mauiProperties))
	for _, p := range mauiProperties {
		rate := float64(p.baseRate)
		h := hotel.Hotel{
			Name:     p.name,
			Brand:    p.brand,
			Rating:   p.rating,
			Location: p.location,
			CheckIn:  q.CheckIn,
			CheckOut: q.CheckOut,
		}
		if q.StormRisk {
			switch {
			case p.baseRate > 300:
				rate *= 0.70
				h.HasStormDiscount = true
				h.DiscountReason = "storm season discount, 30% off due to weather risk"
			case p.baseRate > 200:
				rate *= 0.85
				h.HasStormDiscount = true
				h.DiscountReason = "storm season discount, 15% off"
			}
		}
		jitter := float64(fake.IntBetween(950, 1050)) / 1000
		h.NightlyRate = float64(int(rate * jitter))
		options = append(options, h)
	}
	return options, nil
}

func (c *Catalog) faker(parts ...string) faker.Faker {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return faker.NewWithSeed(rand.NewSource(c.seed ^ int64(h.Sum64())))
}

var _ advisor.Catalog = (*Catalog)(nil)
