package charts

import (
	"fmt"
	"time"

	"radio-charts/internal/models"
)

// Window is a half-open interval [Start, End). A play belongs to a window only
// when it lies entirely inside it; plays straddling either edge are left out.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow normalises both bounds to UTC and requires start < end.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, fmt.Errorf("window bounds are required: %w", models.ErrInvalidWindow)
	}
	if !start.Before(end) {
		return Window{}, fmt.Errorf("window start %s is not before end %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), models.ErrInvalidWindow)
	}
	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// PeriodFrom returns [start, start+period).
func PeriodFrom(start time.Time, period time.Duration) (Window, error) {
	if period <= 0 {
		return Window{}, fmt.Errorf("period must be positive, got %s: %w", period, models.ErrInvalidWindow)
	}
	return NewWindow(start, start.Add(period))
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Previous is the window of equal length ending where w starts.
func (w Window) Previous() Window {
	return Window{Start: w.Start.Add(-w.Duration()), End: w.Start}
}

// Contains reports whether [start, end) lies inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

func (w Window) filter() models.PlayFilter {
	return models.PlayFilter{Start: w.Start, End: w.End}
}
