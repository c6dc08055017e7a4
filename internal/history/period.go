package history

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodWeek Period = "week"
	PeriodAll  Period = "all"
)

const weekWindow = 7 * 24 * time.Hour

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Cutoff returns the exclusive lower bound for message timestamps. ok is false for PeriodAll.
func (p Period) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	if p == PeriodWeek {
		return now.Add(-weekWindow), true
	}
	return time.Time{}, false
}

// Includes reports whether a message created at createdAt belongs to the period.
func (p Period) Includes(createdAt, now time.Time) bool {
	cutoff, ok := p.Cutoff(now)
	if !ok {
		return true
	}
	return createdAt.After(cutoff)
}
