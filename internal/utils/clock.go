package utils

import (
	"time"
	_ "time/tzdata"
)

// Clock supplies the current instant in the salon's timezone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

// NewSystemClock resolves timezone by IANA name; an empty name means the host's local zone.
func NewSystemClock(timezone string) (*SystemClock, error) {
	if timezone == "" {
		return &SystemClock{Location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &SystemClock{Location: loc}, nil
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is the calendar day of clock.Now(), at midnight.
func Today(clock Clock) time.Time {
	return StartOfDay(clock.Now())
}

// SameOrBefore compares the calendar days of a and b, ignoring time of day and zone.
func SameOrBefore(a, b time.Time) bool {
	return !DateOf(a).After(DateOf(b))
}

// DateOf projects t onto a UTC midnight carrying the same year, month and day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
