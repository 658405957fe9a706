package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one student's answer set for one test. The score is computed
// once at submit time and never recomputed; the (TestID, StudentID) pair is
// unique.
type Submission struct {
	ID          uuid.UUID         `json:"id"`
	TestID      uuid.UUID         `json:"test_id"`
	StudentID   int               `json:"student_id"`
	Answers     map[string]string `json:"answers"`
	Score       int               `json:"score"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// SubmitAnswer is one selected option in a submit payload. Questions absent
// from the payload count as unanswered.
type SubmitAnswer struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Selected   string `json:"selected_answer" binding:"required,max=500"`
}

// SubmitTestRequest is the payload for submitting a completed test.
type SubmitTestRequest struct {
	Answers []SubmitAnswer `json:"answers" binding:"dive"`
}

// SubmitTestResponse is returned after a successful submission.
type SubmitTestResponse struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions"`
}

// TestRef is the parent-test summary attached to a student's submission
// listing.
type TestRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	TotalMarks int       `json:"total_marks"`
}

// StudentSubmission is a submission joined with its parent test reference.
// Test is nil when the parent test has been deleted; the submission itself
// is kept.
type StudentSubmission struct {
	Submission
	Test *TestRef `json:"test,omitempty"`
}
