package booking

import (
	"errors"
	"fmt"
	"time"
)

// MaxRentalDays caps a single booking's span.
const MaxRentalDays = 30

var (
	ErrInvalidPeriod  = errors.New("end must be after start")
	ErrPeriodTooLong  = errors.New("booking exceeds maximum rental duration")
	ErrPeriodInPast   = errors.New("booking cannot start in the past")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Period is a half-open rental interval [start, end). Half-open semantics let
// back-to-back bookings share a boundary instant without conflicting.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, ErrInvalidPeriod
	}

	p := Period{start: start, end: end}
	if p.Days() > MaxRentalDays {
		return Period{}, ErrPeriodTooLong
	}
	return p, nil
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

// Days is the billable whole-day count: partial days round up.
func (p Period) Days() int {
	d := p.end.Sub(p.start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Overlaps is true iff the two half-open intervals share at least one
// instant: s1 < e2 && s2 < e1. Adjacent periods never overlap.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && t.Before(p.end)
}

// ToTstzrange renders the period as a PostgreSQL tstzrange literal for the
// exclusion constraint column.
func (p Period) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Equals(other Money) bool { return m.cents == other.cents }
