package hotel

// Annotations and reasons attached by the evaluator.
const (
	AnnotationOverBudgetPreferred = "over budget, preferred brand"
	AnnotationStormDiscount       = "discount correlates with forecast storm risk"
	ReasonOutsideBudget           = "outside budget range"
)

// MaxRating is the top of the rating scale.
const MaxRating = 5.0

// Hotel is a candidate stay priced per night in USD.
type Hotel struct {
	Name             string  `json:"name"`
	Brand            string  `json:"brand"`
	NightlyRate      float64 `json:"nightlyRate"`
	Rating           float64 `json:"rating"`
	Location         string  `json:"location,omitempty"`
	HasStormDiscount bool    `json:"hasStormDiscount"`
	DiscountReason   string  `json:"discountReason,omitempty"`
	CheckIn          string  `json:"checkIn,omitempty"`
	CheckOut         string  `json:"checkOut,omitempty"`
}

// Label identifies the stay in rejections and logs.
func (h Hotel) Label() string {
	if h.CheckIn == "" {
		return h.Name
	}
	return h.Name + " from " + h.CheckIn
}

// Anomaly flags a price signal that should not be read as a deal.
type Anomaly struct {
	Hotel       string  `json:"hotel"`
	CheckIn     string  `json:"checkIn,omitempty"`
	NightlyRate float64 `json:"nightlyRate"`
	StormDays   int     `json:"stormDays"`
	Reason      string  `json:"reason"`
}

// Evaluated is a hotel scored against one profile and window.
type Evaluated struct {
	Hotel
	BrandMatch    bool     `json:"brandMatch"`
	WithinBudget  bool     `json:"withinBudget"`
	Score         float64  `json:"score"`
	MatchesWindow bool     `json:"matchesWindow"`
	Annotations   []string `json:"annotations,omitempty"`
	Anomaly       *Anomaly `json:"anomaly,omitempty"`
}

// HasAnnotation reports whether annotation was attached.
func (e Evaluated) HasAnnotation(annotation string) bool {
	for _, a := range e.Annotations {
		if a == annotation {
			return true
		}
	}
	return false
}

// OverBudgetPreferred reports a preferred-brand hotel kept despite its rate.
func (e Evaluated) OverBudgetPreferred() bool {
	return e.HasAnnotation(AnnotationOverBudgetPreferred)
}

// Excluded is a hotel removed from ranking, kept visible with its reason.
type Excluded struct {
	Hotel  Hotel  `json:"hotel"`
	Reason string `json:"reason"`
}

// Result is the outcome of one evaluation pass.
type Result struct {
	Ranked    []Evaluated `json:"ranked"`
	Excluded  []Excluded  `json:"excluded"`
	Anomalies []Anomaly   `json:"anomalies"`
}
