package exam

import (
	"testing"
	"time"

	"github.com/examhall/exam-portal-backend/internal/model"
)

func windowTest() *model.Test {
	return &model.Test{
		Name:      "Unit Test 1",
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

func TestWindow(t *testing.T) {
	start, end, err := Window(windowTest())
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}

	wantStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestWindowIgnoresDateTimePortion(t *testing.T) {
	// A DATE column scans to midnight UTC, but a caller-constructed value
	// may carry a time-of-day; only the calendar date matters.
	tt := windowTest()
	tt.Date = time.Date(2024, 1, 1, 17, 45, 12, 0, time.UTC)

	start, _, err := Window(tt)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
}

func TestWindowMalformedClock(t *testing.T) {
	tt := windowTest()
	tt.StartTime = "9 o'clock"
	if _, _, err := Window(tt); err == nil {
		t.Error("Window() expected error for malformed start time")
	}

	tt = windowTest()
	tt.EndTime = "25:99"
	if _, _, err := Window(tt); err == nil {
		t.Error("Window() expected error for malformed end time")
	}
}

func TestClassifyBoundaries(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want WindowStatus
	}{
		{"one second before start", start.Add(-time.Second), StatusUpcoming},
		{"exactly at start", start, StatusLive},
		{"mid window", start.Add(30 * time.Minute), StatusLive},
		{"exactly at end", end, StatusLive},
		{"one second after end", end.Add(time.Second), StatusCompleted},
		{"previous day", start.AddDate(0, 0, -1), StatusUpcoming},
		{"next day", end.AddDate(0, 0, 1), StatusCompleted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.now, windowTest())
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Classify(%v) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}
