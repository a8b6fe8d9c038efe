package weather

import (
	"fmt"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

// Windows enumerates every contiguous window of tripLength days, one per
// starting offset 0..len(forecasts)-tripLength.
func Windows(forecasts []DayForecast, tripLength int) ([]Window, error) {
	if tripLength <= 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "trip length must be positive", nil)
	}
	if len(forecasts) < tripLength {
		msg := fmt.Sprintf("forecast covers %d days but the trip needs %d", len(forecasts), tripLength)
		return nil, apperrors.Wrap(apperrors.CodeInsufficientData, msg, nil)
	}
	exhaustive := len(forecasts) == tripLength
	windows := make([]Window, 0, len(forecasts)-tripLength+1)
	for start := 0; start+tripLength <= len(forecasts); start++ {
		windows = append(windows, NewWindow(start, forecasts[start:start+tripLength], exhaustive))
	}
	return windows, nil
}

// FindBestWindow returns the highest scoring window; ties keep the earliest.
func FindBestWindow(forecasts []DayForecast, tripLength int) (Window, error) {
	windows, err := Windows(forecasts, tripLength)
	if err != nil {
		return Window{}, err
	}
	best := windows[0]
	for _, w := range windows[1:] {
		if w.Score > best.Score {
			best = w
		}
	}
	return best, nil
}

// FindWorstWindow returns the lowest scoring window; ties keep the earliest.
func FindWorstWindow(forecasts []DayForecast, tripLength int) (Window, error) {
	windows, err := Windows(forecasts, tripLength)
	if err != nil {
		return Window{}, err
	}
	worst := windows[0]
	for _, w := range windows[1:] {
		if w.Score < worst.Score {
			worst = w
		}
	}
	return worst, nil
}
