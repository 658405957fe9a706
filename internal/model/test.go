package model

import (
	"time"

	"github.com/google/uuid"
)

// Question represents a single multiple-choice question. A question belongs
// to exactly one test and is immutable once the test has been created.
type Question struct {
	ID            uuid.UUID `json:"id"`
	TestID        uuid.UUID `json:"test_id"`
	QuestionText  string    `json:"question_text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	OrderNum      int       `json:"order_num"`
}

// OptionsPerQuestion is the fixed option count for every question.
const OptionsPerQuestion = 4

// Test represents a scheduled assessment. The window is the interval
// [StartTime, EndTime] on Date; both times are minute-precision wall-clock
// strings ("15:04") anchored to UTC together with Date.
type Test struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Date       time.Time  `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	TotalMarks int        `json:"total_marks"`
	CreatedBy  int        `json:"created_by"`
	Questions  []Question `json:"questions,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// QuestionForStudent is a question as shown to a student taking the test.
// The correct answer is stripped before the payload ever leaves the server.
type QuestionForStudent struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	OrderNum     int       `json:"order_num"`
}

// TestPayload is the student-facing test paper, cached in Redis as JSON.
type TestPayload struct {
	TestID     uuid.UUID            `json:"test_id"`
	Name       string               `json:"name"`
	Date       time.Time            `json:"date"`
	StartTime  string               `json:"start_time"`
	EndTime    string               `json:"end_time"`
	TotalMarks int                  `json:"total_marks"`
	Questions  []QuestionForStudent `json:"questions"`
}

// TestListItem is a row in the student's test list, annotated with the
// window status relative to now and whether this student already submitted.
type TestListItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalMarks int       `json:"total_marks"`
	Status     string    `json:"status"`
	Submitted  bool      `json:"submitted"`
}

// CreateQuestionRequest is one question inside a create-test payload.
type CreateQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
}

// CreateTestRequest is the payload for creating a new test with its full
// question set. TotalMarks is optional; when present it must equal
// len(questions) × marks_per_question.
type CreateTestRequest struct {
	Name             string                  `json:"name" binding:"required,min=3,max=255"`
	Date             string                  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime        string                  `json:"start_time" binding:"required,datetime=15:04"`
	EndTime          string                  `json:"end_time" binding:"required,datetime=15:04"`
	MarksPerQuestion int                     `json:"marks_per_question" binding:"required,min=1,max=100"`
	TotalMarks       *int                    `json:"total_marks" binding:"omitempty,min=1"`
	Questions        []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
