package weather

import "github.com/yanqian/trip-advisor/internal/domain/profile"

// Generic scoring treats 70-85°F highs as moderate.
const (
	genericComfortLowF  = 70
	genericComfortHighF = 85
	highWindMph         = 20
	lightBreezeMph      = 10
)

// GenericScore is the profile-agnostic desirability of a run of days: low
// rain and storm incidence, moderate temperatures and low wind score higher.
func GenericScore(days []DayForecast) float64 {
	score := 0.0
	for _, d := range days {
		score += genericDayScore(d)
	}
	return score
}

func genericDayScore(d DayForecast) float64 {
	score := 10.0
	if d.Stormy() {
		score -= 30
	}
	if d.PrecipitationPct > RainyPrecipitationPct {
		score -= 6
	} else {
		score -= float64(d.PrecipitationPct) / 10
	}
	switch {
	case d.HighF > genericComfortHighF:
		score -= 1.5 * float64(d.HighF-genericComfortHighF)
	case d.HighF < genericComfortLowF:
		score -= 1.5 * float64(genericComfortLowF-d.HighF)
	}
	score += windAdjustment(d.WindMph)
	return score
}

// ScoreForProfile rates days against one traveler's comfort range. Storm and
// rain penalties scale with comfort priority, so a 10 is hit twice as hard as a 5.
func ScoreForProfile(days []DayForecast, p profile.UserProfile) float64 {
	comfort := float64(p.ComfortPriority)
	score := 0.0
	for _, d := range days {
		high := float64(d.HighF)
		if p.InComfortRange(high) {
			score += 10
		} else {
			score -= 1.5 * p.DegreesOutside(high)
		}
		if d.Stormy() {
			score -= 5 * comfort
		}
		if d.PrecipitationPct > RainyPrecipitationPct {
			score -= 3 * comfort / 5
		}
		score += windAdjustment(d.WindMph)
	}
	return score
}

func windAdjustment(mph int) float64 {
	switch {
	case mph > highWindMph:
		return -5
	case mph < lightBreezeMph:
		return 2
	default:
		return 0
	}
}
