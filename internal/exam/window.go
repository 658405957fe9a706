package exam

import (
	"fmt"
	"time"

	"github.com/examhall/exam-portal-backend/internal/model"
)

// WindowStatus is the computed lifecycle state of a test relative to a
// point in time. It is never persisted; every read recomputes it.
type WindowStatus string

const (
	StatusUpcoming  WindowStatus = "UPCOMING"
	StatusLive      WindowStatus = "LIVE"
	StatusCompleted WindowStatus = "COMPLETED"
)

// clockLayout is the minute-precision wall-clock format tests are stored
// with ("09:30").
const clockLayout = "15:04"

// Window resolves a test's start and end instants. Both are anchored to the
// test's calendar date in UTC; every caller in the system compares against
// time.Now().UTC() so both sides of the comparison share one anchoring rule.
func Window(t *model.Test) (start, end time.Time, err error) {
	startClock, err := time.Parse(clockLayout, t.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start time %q: %w", t.StartTime, err)
	}
	endClock, err := time.Parse(clockLayout, t.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end time %q: %w", t.EndTime, err)
	}

	y, m, d := t.Date.Date()
	start = time.Date(y, m, d, startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)
	end = time.Date(y, m, d, endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)
	return start, end, nil
}

// Classify maps now against the test's window:
//
//	now < start          → UPCOMING
//	start ≤ now ≤ end    → LIVE (inclusive on both boundaries)
//	now > end            → COMPLETED
//
// A submission at exactly end is still accepted.
func Classify(now time.Time, t *model.Test) (WindowStatus, error) {
	start, end, err := Window(t)
	if err != nil {
		return "", err
	}

	switch {
	case now.Before(start):
		return StatusUpcoming, nil
	case now.After(end):
		return StatusCompleted, nil
	default:
		return StatusLive, nil
	}
}
