package exam

import (
	"math"
	"testing"
	"time"

	"github.com/examhall/exam-portal-backend/internal/model"
)

func rosterFixture(ids ...int) []model.Student {
	students := make([]model.Student, len(ids))
	for i, id := range ids {
		students[i] = model.Student{
			ID:     id,
			Name:   "Student",
			PRN:    "PRN",
			Status: model.StudentStatusApproved,
		}
	}
	return students
}

func reportTestFixture() *model.Test {
	return &model.Test{
		Name:       "Midterm",
		TotalMarks: 20,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "10:00",
	}
}

func TestBuildReportPartition(t *testing.T) {
	roster := rosterFixture(1, 2, 3)
	subs := []SubmittedRow{
		{StudentID: 1, Score: 10},
		{StudentID: 2, Score: 15},
	}

	report := BuildReport(reportTestFixture(), roster, subs)

	if len(report.Submitted) != 2 {
		t.Fatalf("submitted = %d rows, want 2", len(report.Submitted))
	}
	if len(report.NotSubmitted) != 1 || report.NotSubmitted[0].StudentID != 3 {
		t.Fatalf("notSubmitted = %+v, want exactly student 3", report.NotSubmitted)
	}

	// Disjoint and exhaustive over the roster.
	seen := make(map[int]int)
	for _, r := range report.Submitted {
		seen[r.StudentID]++
	}
	for _, r := range report.NotSubmitted {
		seen[r.StudentID]++
	}
	for _, s := range roster {
		if seen[s.ID] != 1 {
			t.Errorf("student %d appears %d times across partitions, want 1", s.ID, seen[s.ID])
		}
	}
}

func TestBuildReportExcludesDanglingReferences(t *testing.T) {
	roster := rosterFixture(1, 2)
	subs := []SubmittedRow{
		{StudentID: 1, Score: 8},
		{StudentID: 99, Score: 20}, // student deleted after submitting
	}

	report := BuildReport(reportTestFixture(), roster, subs)

	if len(report.Submitted) != 1 || report.Submitted[0].StudentID != 1 {
		t.Fatalf("submitted = %+v, want only student 1", report.Submitted)
	}
	for _, r := range report.NotSubmitted {
		if r.StudentID == 99 {
			t.Error("dangling student must not surface in notSubmitted")
		}
	}
	// The dangling score must not skew the stats.
	if report.Summary.HighestScore != 8 {
		t.Errorf("highest = %d, want 8", report.Summary.HighestScore)
	}
}

func TestBuildReportSummary(t *testing.T) {
	roster := rosterFixture(1, 2, 3, 4)
	subs := []SubmittedRow{
		{StudentID: 1, Score: 10},
		{StudentID: 2, Score: 20},
		{StudentID: 3, Score: 12},
	}

	report := BuildReport(reportTestFixture(), roster, subs)

	if want := 14.0; math.Abs(report.Summary.AverageScore-want) > 1e-9 {
		t.Errorf("average = %v, want %v", report.Summary.AverageScore, want)
	}
	if report.Summary.HighestScore != 20 {
		t.Errorf("highest = %d, want 20", report.Summary.HighestScore)
	}
	if want := 0.75; math.Abs(report.Summary.SubmissionRate-want) > 1e-9 {
		t.Errorf("rate = %v, want %v", report.Summary.SubmissionRate, want)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(reportTestFixture(), nil, nil)

	if len(report.Submitted) != 0 || len(report.NotSubmitted) != 0 {
		t.Errorf("empty roster must yield empty partitions, got %+v", report)
	}
	if report.Summary != (Summary{}) {
		t.Errorf("empty report summary = %+v, want zero value", report.Summary)
	}
	if report.TestName != "Midterm" || report.TotalMarks != 20 {
		t.Errorf("report header = %q/%d, want Midterm/20", report.TestName, report.TotalMarks)
	}
}
