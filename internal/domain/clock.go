package domain

import (
	"fmt"
	"time"
)

// DefaultSpeed is 18 mph expressed in miles per minute.
const DefaultSpeed = 0.3

// SimClock converts distances into simulated travel time at a fixed speed.
type SimClock struct {
	Speed float64 // miles per minute
}

func NewSimClock(speed float64) SimClock {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return SimClock{Speed: speed}
}

func (c SimClock) TravelMinutes(miles float64) float64 { return miles / c.Speed }

func (c SimClock) TravelDuration(miles float64) time.Duration {
	return MinutesToDuration(c.TravelMinutes(miles))
}

// Reach is the distance covered in the given minutes.
func (c SimClock) Reach(minutes float64) float64 { return c.Speed * minutes }

// CanDrive reports whether the distance fits in the remaining minutes.
func (c SimClock) CanDrive(miles, minutes float64) bool {
	return c.TravelMinutes(miles) <= minutes
}

func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// BudgetMinutes is the time between begin and end, never negative.
func BudgetMinutes(begin, end time.Time) float64 {
	if !end.After(begin) {
		return 0
	}
	return end.Sub(begin).Minutes()
}

func Earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// Cap bounds t by cutoff.
func Cap(t, cutoff time.Time) time.Time { return Earlier(t, cutoff) }

// ParseWallClock parses a 24-hour "HHMM" string (e.g. "0935") as a time on day.
func ParseWallClock(day time.Time, hhmm string) (time.Time, error) {
	if len(hhmm) != 4 {
		return time.Time{}, fmt.Errorf("parse wall clock %q: want HHMM: %w", hhmm, ErrInvalidTimeInput)
	}
	t, err := time.Parse("1504", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse wall clock %q: %w", hhmm, ErrInvalidTimeInput)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
