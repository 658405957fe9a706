package exam

import (
	"time"

	"github.com/examhall/exam-portal-backend/internal/model"
)

// SubmittedRow is one scored submission joined with the submitting student's
// roster identity.
type SubmittedRow struct {
	StudentID   int       `json:"student_id"`
	Name        string    `json:"name"`
	PRN         string    `json:"prn"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RosterStudent is the identity slice of a student used in report output.
type RosterStudent struct {
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	PRN       string `json:"prn"`
}

// Summary holds the derived statistics over the submitted partition. They
// are recomputed on every report request and never stored.
type Summary struct {
	AverageScore   float64 `json:"average_score"`
	HighestScore   int     `json:"highest_score"`
	SubmissionRate float64 `json:"submission_rate"`
}

// Report partitions the current roster into students who submitted and
// students who did not, plus the derived summary.
type Report struct {
	TestName     string          `json:"test_name"`
	TotalMarks   int             `json:"total_marks"`
	Submitted    []SubmittedRow  `json:"submitted_students"`
	NotSubmitted []RosterStudent `json:"not_submitted_students"`
	Summary      Summary         `json:"summary"`
}

// BuildReport partitions roster against the test's submissions. Submissions
// whose student no longer appears in the roster are dropped silently — a
// deleted student is no longer eligible, so their row belongs in neither
// partition. The result is exhaustive and disjoint over roster: every roster
// student lands in exactly one partition.
func BuildReport(test *model.Test, roster []model.Student, submissions []SubmittedRow) Report {
	byID := make(map[int]model.Student, len(roster))
	for _, s := range roster {
		byID[s.ID] = s
	}

	submitted := make([]SubmittedRow, 0, len(submissions))
	submittedIDs := make(map[int]struct{}, len(submissions))
	for _, row := range submissions {
		if _, ok := byID[row.StudentID]; !ok {
			continue // dangling student reference
		}
		submitted = append(submitted, row)
		submittedIDs[row.StudentID] = struct{}{}
	}

	notSubmitted := make([]RosterStudent, 0, len(roster)-len(submitted))
	for _, s := range roster {
		if _, ok := submittedIDs[s.ID]; ok {
			continue
		}
		notSubmitted = append(notSubmitted, RosterStudent{
			StudentID: s.ID,
			Name:      s.Name,
			PRN:       s.PRN,
		})
	}

	return Report{
		TestName:     test.Name,
		TotalMarks:   test.TotalMarks,
		Submitted:    submitted,
		NotSubmitted: notSubmitted,
		Summary:      summarize(submitted, len(roster)),
	}
}

func summarize(submitted []SubmittedRow, rosterSize int) Summary {
	var s Summary
	if len(submitted) == 0 {
		return s
	}

	total := 0
	for _, row := range submitted {
		total += row.Score
		if row.Score > s.HighestScore {
			s.HighestScore = row.Score
		}
	}
	s.AverageScore = float64(total) / float64(len(submitted))
	if rosterSize > 0 {
		s.SubmissionRate = float64(len(submitted)) / float64(rosterSize)
	}
	return s
}
