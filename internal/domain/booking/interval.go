package booking

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Clock é uma hora do dia em minutos desde a meia-noite.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start Clock
	End   Clock
}

func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps is symmetric. Intervals that only touch (a.End == b.Start)
// do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i, o)
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.End-i.Start) * time.Minute
}

// WholeHours trunca: 90 minutos contam como 1 hora.
func (i Interval) WholeHours() int {
	return int(i.Duration() / time.Hour)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
