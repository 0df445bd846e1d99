package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidPeriod   = errors.New("pickup must be before return")
	ErrPeriodInPast    = errors.New("pickup cannot be in the past")
	ErrNegativeMoney   = errors.New("money cannot be negative")
	ErrHourGranularity = errors.New("rental period must start and end on the hour")
)

// RentalPeriod is the occupied window of a booking. Instants are UTC and
// hour-aligned; the pickup and return hours are the hand-over hours the
// availability engine keeps reserved on the boundary dates.
type RentalPeriod struct {
	start time.Time
	end   time.Time
}

func NewRentalPeriod(start, end time.Time) (RentalPeriod, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return RentalPeriod{}, ErrInvalidPeriod
	}
	if !start.Truncate(time.Hour).Equal(start) || !end.Truncate(time.Hour).Equal(end) {
		return RentalPeriod{}, ErrHourGranularity
	}
	return RentalPeriod{start: start, end: end}, nil
}

func (p RentalPeriod) Start() time.Time { return p.start }
func (p RentalPeriod) End() time.Time   { return p.end }

func (p RentalPeriod) PickupHour() int { return p.start.Hour() }
func (p RentalPeriod) ReturnHour() int { return p.end.Hour() }

func (p RentalPeriod) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Days is the number of charged rental days, any started day counting whole.
func (p RentalPeriod) Days() int {
	days := int(p.Duration() / (24 * time.Hour))
	if p.Duration()%(24*time.Hour) > 0 {
		days++
	}
	return days
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string { return n.value }
func (n Note) IsEmpty() bool  { return n.value == "" }
