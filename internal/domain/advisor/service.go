package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
	"github.com/yanqian/trip-advisor/pkg/util"
)

// Service exposes the decision operations to transports.
type Service interface {
	GetProfile(ctx context.Context, id string) (profile.UserProfile, error)
	ListProfiles(ctx context.Context) ([]string, error)
	GetForecast(ctx context.Context, req ForecastRequest) (ForecastResponse, error)
	FindWindows(ctx context.Context, req WindowsRequest) (WindowsResponse, error)
	EvaluateFlights(ctx context.Context, req FlightsRequest) (flight.Result, error)
	EvaluateHotels(ctx context.Context, req HotelsRequest) (hotel.Result, error)
	Synthesize(ctx context.Context, req SynthesizeRequest) (Recommendation, error)
	Recommend(ctx context.Context, req RecommendRequest) (Recommendation, error)
}

type service struct {
	cfg      Config
	profiles profile.Service
	catalog  Catalog
	flights  *flight.Evaluator
	hotels   *hotel.Evaluator
	synth    *Synthesizer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires up the advisor domain.
func NewService(cfg Config, profiles profile.Service, catalog Catalog, logger *slog.Logger) Service {
	hotelCfg := hotel.DefaultConfig()
	hotelCfg.StormDayThreshold = cfg.StormDayThreshold
	hotelCfg.OverBudgetTolerance = cfg.HotelOverBudgetTolerance
	return &service{
		cfg:      cfg,
		profiles: profiles,
		catalog:  catalog,
		flights:  flight.NewEvaluator(flight.DefaultConfig()),
		hotels:   hotel.NewEvaluator(hotelCfg),
		synth:    NewSynthesizer(cfg),
		logger:   logger.With("component", "advisor.service"),
		now:      util.NowUTC,
		newID:    uuid.NewString,
	}
}

func (s *service) GetProfile(ctx context.Context, id string) (profile.UserProfile, error) {
	return s.profiles.Get(ctx, id)
}

func (s *service) ListProfiles(ctx context.Context) ([]string, error) {
	return s.profiles.List(ctx)
}

func (s *service) GetForecast(_ context.Context, req ForecastRequest) (ForecastResponse, error) {
	location := firstNonEmpty(strings.TrimSpace(req.Location), s.cfg.DefaultLocation)
	start, err := s.resolveStart(req.StartDate)
	if err != nil {
		return ForecastResponse{}, err
	}
	days := req.Days
	if days == 0 {
		days = s.cfg.HorizonDays
	}
	if limit := s.cfg.MaxHorizonDays; limit > 0 && days > limit {
		return ForecastResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("days cannot exceed %d", limit), nil)
	}
	forecasts, err := weather.GenerateForecast(location, start, days)
	if err != nil {
		return ForecastResponse{}, err
	}
	return ForecastResponse{Location: location, StartDate: util.FormatDate(start), Days: forecasts}, nil
}

func (s *service) FindWindows(_ context.Context, req WindowsRequest) (WindowsResponse, error) {
	windows, err := weather.Windows(req.Forecasts, req.TripLength)
	if err != nil {
		return WindowsResponse{}, err
	}
	best, err := weather.FindBestWindow(req.Forecasts, req.TripLength)
	if err != nil {
		return WindowsResponse{}, err
	}
	worst, err := weather.FindWorstWindow(req.Forecasts, req.TripLength)
	if err != nil {
		return WindowsResponse{}, err
	}
	return WindowsResponse{Best: best, Worst: worst, Candidates: len(windows), Exhaustive: best.Exhaustive}, nil
}

func (s *service) EvaluateFlights(ctx context.Context, req FlightsRequest) (flight.Result, error) {
	p, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return flight.Result{}, err
	}
	return s.flights.Evaluate(req.Candidates, p, weather.NewWindow(0, req.Window, false)), nil
}

func (s *service) EvaluateHotels(ctx context.Context, req HotelsRequest) (hotel.Result, error) {
	p, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return hotel.Result{}, err
	}
	return s.hotels.Evaluate(req.Candidates, p, weather.NewWindow(0, req.Window, false)), nil
}

func (s *service) Synthesize(ctx context.Context, req SynthesizeRequest) (Recommendation, error) {
	p, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return Recommendation{}, err
	}
	rec, err := s.synth.Synthesize(p, req.Forecasts, req.Flights, req.Hotels)
	if err != nil {
		return Recommendation{}, err
	}
	return s.stamp(rec), nil
}

// Recommend runs forecast, catalog search, evaluation and synthesis. Flights
// and per-stay hotels are searched and evaluated concurrently.
func (s *service) Recommend(ctx context.Context, req RecommendRequest) (Recommendation, error) {
	p, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return Recommendation{}, err
	}
	forecast, err := s.GetForecast(ctx, ForecastRequest{Location: req.Location, StartDate: req.StartDate, Days: req.Days})
	if err != nil {
		return Recommendation{}, err
	}
	forecasts := forecast.Days
	windows, err := weather.Windows(forecasts, p.TripNights)
	if err != nil {
		return Recommendation{}, err
	}
	best, err := weather.FindBestWindow(forecasts, p.TripNights)
	if err != nil {
		return Recommendation{}, err
	}

	departures := s.departureOffsets(len(windows))
	dates := make([]string, 0, len(departures))
	for _, offset := range departures {
		dates = append(dates, windows[offset].StartDate())
	}

	var flightResult flight.Result
	hotelResults := make([]hotel.Result, len(departures))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.MaxConcurrentSearches > 0 {
		g.SetLimit(s.cfg.MaxConcurrentSearches)
	}
	g.Go(func() error {
		candidates, err := s.catalog.SearchFlights(gctx, FlightQuery{
			Origin:         firstNonEmpty(strings.TrimSpace(req.Origin), s.cfg.DefaultOrigin),
			Destination:    s.cfg.DestinationAirport,
			DepartureDates: dates,
			Nights:         p.TripNights,
		})
		if err != nil {
			return apperrors.Wrap(apperrors.CodeCatalog, "flight search failed", err)
		}
		flightResult = s.flights.Evaluate(candidates, p, best)
		return nil
	})
	for i, offset := range departures {
		i, w := i, windows[offset]
		g.Go(func() error {
			checkOut, err := util.AddDays(w.StartDate(), p.TripNights)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid stay dates", err)
			}
			candidates, err := s.catalog.SearchHotels(gctx, HotelQuery{
				Location:  forecast.Location,
				CheckIn:   w.StartDate(),
				CheckOut:  checkOut,
				StormRisk: w.StormDays > 0,
			})
			if err != nil {
				return apperrors.Wrap(apperrors.CodeCatalog, "hotel search failed", err)
			}
			hotelResults[i] = s.hotels.Evaluate(candidates, p, w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Recommendation{}, err
	}

	hotelResult := hotel.Merge(hotelResults...)
	rec, err := s.synth.Synthesize(p, forecasts, flightResult, hotelResult)
	if err != nil {
		return Recommendation{}, err
	}
	rec = s.stamp(rec)
	s.logger.Info("recommendation built",
		"user_id", p.ID,
		"recommendation_id", rec.ID,
		"confidence", rec.Confidence,
		"compromise", rec.Compromise,
		"flights", len(flightResult.Ranked),
		"hotels", len(hotelResult.Ranked),
		"rejections", len(rec.Rejections),
	)
	return rec, nil
}

// departureOffsets samples window starts every SearchStepDays, always
// including the last window.
func (s *service) departureOffsets(windowCount int) []int {
	step := s.cfg.SearchStepDays
	if step <= 0 {
		step = 1
	}
	offsets := make([]int, 0, windowCount/step+1)
	for offset := 0; offset < windowCount; offset += step {
		offsets = append(offsets, offset)
	}
	if last := windowCount - 1; offsets[len(offsets)-1] != last {
		offsets = append(offsets, last)
	}
	return offsets
}

func (s *service) stamp(rec Recommendation) Recommendation {
	rec.ID = s.newID()
	rec.GeneratedAt = s.now().Format(time.RFC3339)
	return rec
}

func (s *service) resolveStart(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return util.TruncateDay(s.now()), nil
	}
	start, err := util.ParseDate(trimmed)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.CodeInvalidInput, "startDate must be formatted as YYYY-MM-DD", err)
	}
	return start, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
