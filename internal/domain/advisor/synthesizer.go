package advisor

import (
	"fmt"
	"math"
	"sort"

	"github.com/yanqian/trip-advisor/internal/domain/flight"
	"github.com/yanqian/trip-advisor/internal/domain/hotel"
	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/domain/weather"
	"github.com/yanqian/trip-advisor/pkg/util"
)

// Synthesizer turns evaluator outputs into one recommendation. It is pure:
// identical inputs always produce identical recommendations.
type Synthesizer struct {
	stormThreshold  int
	tempMargin      float64
	maxAlternatives int
}

// NewSynthesizer reads the thresholds from cfg.
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{
		stormThreshold:  cfg.StormDayThreshold,
		tempMargin:      cfg.TemperatureMargin,
		maxAlternatives: cfg.MaxAlternatives,
	}
}

// candidate is a storm-safe window with its profile score and picks.
type candidate struct {
	window    weather.Window
	score     float64
	flight    *flight.Evaluated
	hotel     *hotel.Evaluated
	weatherOK bool
}

func (c candidate) budgetOK() bool {
	return c.flight != nil && c.hotel != nil
}

// Synthesize chooses a window for p. Windows above the storm threshold are
// rejected for every profile, whatever its comfort priority.
func (s *Synthesizer) Synthesize(p profile.UserProfile, forecasts []weather.DayForecast, flights flight.Result, hotels hotel.Result) (Recommendation, error) {
	if err := p.Validate(); err != nil {
		return Recommendation{}, err
	}
	windows, err := weather.Windows(forecasts, p.TripNights)
	if err != nil {
		return Recommendation{}, err
	}

	rec := Recommendation{
		UserID:       p.ID,
		Flight:       supportFlight(nil),
		Hotel:        supportHotel(nil),
		Alternatives: []Alternative{},
		Rejections:   []Rejection{},
	}

	candidates := make([]candidate, 0, len(windows))
	for _, w := range windows {
		if w.StormRisk(s.stormThreshold) {
			rec.Rejections = append(rec.Rejections, Rejection{
				Kind:    RejectWindow,
				Subject: w.Label(),
				Reason:  fmt.Sprintf("%d storm days exceed the risk threshold of %d", w.StormDays, s.stormThreshold),
			})
			continue
		}
		candidates = append(candidates, candidate{
			window:    w,
			score:     round2(weather.ScoreForProfile(w.Days, p)),
			flight:    pickFlight(flights.Ranked, w, p),
			hotel:     s.pickHotel(hotels.Ranked, w, p, forecasts),
			weatherOK: s.weatherOK(w, p),
		})
	}
	if r, ok := hotPeriod(p, forecasts); ok {
		rec.Rejections = append(rec.Rejections, r)
	}
	rec.Rejections = append(rec.Rejections, optionRejections(p, flights, hotels)...)

	if len(candidates) == 0 {
		rec.Confidence = ConfidenceLow
		rec.ConfidenceReasons = []string{fmt.Sprintf("every %d-night window exceeds the storm risk threshold", p.TripNights)}
		return rec, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].window.Offset < candidates[j].window.Offset
	})

	chosen := -1
	for i, c := range candidates {
		if c.weatherOK && c.budgetOK() {
			chosen = i
			break
		}
	}
	rec.Compromise = chosen < 0
	if rec.Compromise {
		chosen = 0
	}

	best := candidates[chosen]
	summary := summarize(best)
	rec.Window = &summary
	rec.Flight = supportFlight(best.flight)
	rec.Hotel = supportHotel(best.hotel)
	rec.Confidence, rec.ConfidenceReasons = s.confidence(best, p, forecasts, rec.Compromise)
	rec.Alternatives = s.alternatives(candidates, chosen)
	return rec, nil
}

// weatherOK accepts an average high within the comfort range widened by the margin.
func (s *Synthesizer) weatherOK(w weather.Window, p profile.UserProfile) bool {
	return p.DegreesOutside(w.AvgHighF) <= s.tempMargin
}

// pickFlight returns the best ranked flight departing near the window start.
func pickFlight(ranked []flight.Evaluated, w weather.Window, p profile.UserProfile) *flight.Evaluated {
	for i := range ranked {
		if w.Near(ranked[i].DepartureDate, p.FlexibilityDays) {
			pick := ranked[i]
			return &pick
		}
	}
	return nil
}

// pickHotel returns the best ranked hotel near the window start whose storm
// discount, if any, does not coincide with storms during its own stay.
func (s *Synthesizer) pickHotel(ranked []hotel.Evaluated, w weather.Window, p profile.UserProfile, forecasts []weather.DayForecast) *hotel.Evaluated {
	for i := range ranked {
		h := ranked[i]
		if !w.Near(h.CheckIn, p.FlexibilityDays) {
			continue
		}
		if h.HasStormDiscount {
			from, to := stayRange(h.Hotel, w, p.TripNights)
			if weather.StormDaysBetween(forecasts, from, to) > s.stormThreshold {
				continue
			}
		}
		return &h
	}
	return nil
}

// stayRange is the inclusive range of nights for h; undated hotels inherit the window.
func stayRange(h hotel.Hotel, w weather.Window, nights int) (string, string) {
	if h.CheckIn == "" {
		return w.StartDate(), w.EndDate()
	}
	if h.CheckOut != "" {
		if last, err := util.AddDays(h.CheckOut, -1); err == nil {
			return h.CheckIn, last
		}
	}
	if last, err := util.AddDays(h.CheckIn, nights-1); err == nil {
		return h.CheckIn, last
	}
	return h.CheckIn, h.CheckIn
}

// travelRange is the inclusive date range covered by f; undated flights inherit the window.
func travelRange(f flight.Flight, w weather.Window, nights int) (string, string) {
	if f.DepartureDate == "" {
		return w.StartDate(), w.EndDate()
	}
	if f.ReturnDate != "" {
		return f.DepartureDate, f.ReturnDate
	}
	if last, err := util.AddDays(f.DepartureDate, nights); err == nil {
		return f.DepartureDate, last
	}
	return f.DepartureDate, f.DepartureDate
}

func (s *Synthesizer) confidence(c candidate, p profile.UserProfile, forecasts []weather.DayForecast, compromise bool) (Confidence, []string) {
	w := c.window
	if compromise {
		var reasons []string
		if !c.weatherOK {
			reasons = append(reasons, fmt.Sprintf("average high %.1f°F is more than %.0f°F outside the %d-%d°F comfort range",
				w.AvgHighF, s.tempMargin, p.TempMinF, p.TempMaxF))
		}
		if c.flight == nil {
			reasons = append(reasons, "no flight within the hard budget departs near this window")
		}
		if c.hotel == nil {
			reasons = append(reasons, "no hotel within budget is available near this window")
		}
		return ConfidenceLow, append(reasons, "no window satisfies both weather and budget, best partial match returned")
	}

	var downgrades []string
	if !p.InComfortRange(w.AvgHighF) {
		downgrades = append(downgrades, fmt.Sprintf("average high %.1f°F is %.1f°F outside the %d-%d°F comfort range",
			w.AvgHighF, p.DegreesOutside(w.AvgHighF), p.TempMinF, p.TempMaxF))
	}
	if w.Exhaustive {
		downgrades = append(downgrades, "window spans the whole forecast horizon, no alternative dates exist")
	}
	if storms := s.supportStormDays(c, p, forecasts); storms > 0 {
		downgrades = append(downgrades, fmt.Sprintf("supporting travel dates include %d storm day(s)", storms))
	}
	if !c.flight.WithinSoftBudget {
		downgrades = append(downgrades, fmt.Sprintf("flight is $%.0f over the soft budget", c.flight.SoftBudgetDelta))
	}
	if c.hotel.OverBudgetPreferred() {
		downgrades = append(downgrades, "hotel exceeds the nightly budget for a preferred brand")
	}
	if len(downgrades) > 0 {
		return ConfidenceMedium, downgrades
	}
	return ConfidenceHigh, []string{
		fmt.Sprintf("average high %.1f°F is inside the %d-%d°F comfort range", w.AvgHighF, p.TempMinF, p.TempMaxF),
		"no storm days during the supporting flight or hotel dates",
		"flight and hotel are within budget",
	}
}

// supportStormDays is the larger storm-day count of the flight and hotel date ranges.
func (s *Synthesizer) supportStormDays(c candidate, p profile.UserProfile, forecasts []weather.DayForecast) int {
	from, to := travelRange(c.flight.Flight, c.window, p.TripNights)
	storms := weather.StormDaysBetween(forecasts, from, to)
	from, to = stayRange(c.hotel.Hotel, c.window, p.TripNights)
	if n := weather.StormDaysBetween(forecasts, from, to); n > storms {
		storms = n
	}
	return storms
}

// alternatives prefers runner-ups that do not overlap the chosen window or
// each other, then fills from the remaining candidates.
func (s *Synthesizer) alternatives(candidates []candidate, chosen int) []Alternative {
	if s.maxAlternatives <= 0 {
		return []Alternative{}
	}
	taken := map[int]bool{chosen: true}
	picked := []int{}
	pick := func(allowOverlap bool) {
		for i, c := range candidates {
			if len(picked) >= s.maxAlternatives {
				return
			}
			if taken[i] {
				continue
			}
			if !allowOverlap && overlapsAny(c, candidates, taken) {
				continue
			}
			taken[i] = true
			picked = append(picked, i)
		}
	}
	pick(false)
	pick(true)

	best := candidates[chosen]
	out := make([]Alternative, 0, len(picked))
	for _, i := range picked {
		c := candidates[i]
		out = append(out, Alternative{
			Window: summarize(c),
			Reason: alternativeReason(c, best),
			Flight: supportFlight(c.flight),
			Hotel:  supportHotel(c.hotel),
		})
	}
	return out
}

func overlapsAny(c candidate, candidates []candidate, taken map[int]bool) bool {
	for i := range taken {
		if c.window.Overlaps(candidates[i].window) {
			return true
		}
	}
	return false
}

func alternativeReason(c, best candidate) string {
	reason := fmt.Sprintf("%d rainy day(s), average high %.1f°F, scores %.1f below the recommended window",
		c.window.RainyDays, c.window.AvgHighF, math.Max(0, best.score-c.score))
	if !c.weatherOK {
		reason += "; temperatures outside comfort range"
	}
	if !c.budgetOK() {
		reason += "; missing a supporting flight or hotel"
	}
	return reason
}

// hotPeriod flags the stretch of the forecast that runs well above the
// profile's maximum. It does not change which window is chosen.
func hotPeriod(p profile.UserProfile, forecasts []weather.DayForecast) (Rejection, bool) {
	limit := p.TempMaxF + HotDayMarginF
	var first, last string
	hot := 0
	for _, d := range forecasts {
		if d.HighF <= limit {
			continue
		}
		if hot == 0 {
			first = d.Date
		}
		last = d.Date
		hot++
	}
	if hot <= HotDayLimit {
		return Rejection{}, false
	}
	return Rejection{
		Kind:    RejectForecast,
		Subject: first + " to " + last,
		Reason:  fmt.Sprintf("%d days above %d°F", hot, limit),
	}, true
}

// optionRejections lists excluded flights, excluded hotels and storm-discount
// anomalies, each once.
func optionRejections(p profile.UserProfile, flights flight.Result, hotels hotel.Result) []Rejection {
	seen := map[Rejection]bool{}
	var out []Rejection
	add := func(r Rejection) {
		if seen[r] {
			return
		}
		seen[r] = true
		out = append(out, r)
	}
	for _, ex := range flights.Excluded {
		add(Rejection{
			Kind:    RejectFlight,
			Subject: ex.Flight.Label(),
			Reason:  fmt.Sprintf("%s ($%.0f above $%.0f)", ex.Reason, ex.Flight.Price, p.FlightBudget.Hard),
		})
	}
	for _, ex := range hotels.Excluded {
		add(Rejection{
			Kind:    RejectHotel,
			Subject: ex.Hotel.Name,
			Reason:  fmt.Sprintf("%s ($%.0f/night vs $%.0f-$%.0f)", ex.Reason, ex.Hotel.NightlyRate, p.HotelBudget.Min, p.HotelBudget.Max),
		})
	}
	for _, a := range hotels.Anomalies {
		subject := a.Hotel
		if a.CheckIn != "" {
			subject += " from " + a.CheckIn
		}
		add(Rejection{
			Kind:    RejectHotel,
			Subject: subject,
			Reason:  fmt.Sprintf("%s (%d storm days)", a.Reason, a.StormDays),
		})
	}
	return out
}

func summarize(c candidate) WindowSummary {
	w := c.window
	return WindowSummary{
		StartDate:    w.StartDate(),
		EndDate:      w.EndDate(),
		Offset:       w.Offset,
		Length:       w.Len(),
		AvgHighF:     w.AvgHighF,
		AvgLowF:      w.AvgLowF,
		RainyDays:    w.RainyDays,
		StormDays:    w.StormDays,
		Score:        c.score,
		GenericScore: w.Score,
		Exhaustive:   w.Exhaustive,
	}
}

func supportFlight(f *flight.Evaluated) SupportingFlight {
	if f == nil {
		return SupportingFlight{Status: StatusUnavailable, Note: "no flight option available for this window"}
	}
	return SupportingFlight{Status: StatusAvailable, Flight: f}
}

func supportHotel(h *hotel.Evaluated) SupportingHotel {
	if h == nil {
		return SupportingHotel{Status: StatusUnavailable, Note: "no hotel option available for this window"}
	}
	return SupportingHotel{Status: StatusAvailable, Hotel: h}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
