package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/examhall/exam-portal-backend/internal/exam"
	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
)

// ErrTestNotLive indicates a submit outside the test's open window.
var ErrTestNotLive = errors.New("test is not currently live")

// SubmissionService grades and persists test submissions.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	testRepo       *repository.TestRepository
	testService    *TestService
	log            zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	testRepo *repository.TestRepository,
	testService *TestService,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		testRepo:       testRepo,
		testService:    testService,
		log:            log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit grades a student's answers and records the result. The submission
// is accepted only while the test is live, and at most once per student:
// the insert itself is the arbiter, so two racing submits cannot both land.
// The recorded score is final whatever the window does afterwards.
func (s *SubmissionService) Submit(ctx context.Context, studentID int, testID uuid.UUID, req *model.SubmitTestRequest) (*model.SubmitTestResponse, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	status, err := exam.Classify(time.Now().UTC(), test)
	if err != nil {
		return nil, fmt.Errorf("classify window: %w", err)
	}
	if status != exam.StatusLive {
		return nil, ErrTestNotLive
	}

	// Duplicate question IDs in the request collapse to the last answer.
	answers := make(map[string]string, len(req.Answers))
	for _, a := range req.Answers {
		answers[a.QuestionID] = a.Selected
	}

	key, err := s.testService.GetAnswerKey(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("answer key: %w", err)
	}

	submission := &model.Submission{
		TestID:    testID,
		StudentID: studentID,
		Answers:   answers,
		Score:     exam.Score(key, answers),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("test_id", testID.String()).
		Int("student_id", studentID).
		Int("score", submission.Score).
		Msg("Submission recorded")

	return &model.SubmitTestResponse{
		Score:          submission.Score,
		TotalQuestions: len(key),
	}, nil
}

// ListMine retrieves the student's own submissions, newest first.
func (s *SubmissionService) ListMine(ctx context.Context, studentID int) ([]model.StudentSubmission, error) {
	subs, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.StudentSubmission{}
	}
	return subs, nil
}

// ListTestsForStudent returns every test annotated with its window status
// and whether this student already submitted it.
func (s *SubmissionService) ListTestsForStudent(ctx context.Context, studentID int) ([]model.TestListItem, error) {
	tests, err := s.testRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	taken, err := s.submissionRepo.ListTestIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]model.TestListItem, 0, len(tests))
	for i := range tests {
		t := &tests[i]
		status, err := exam.Classify(now, t)
		if err != nil {
			s.log.Warn().Err(err).Str("test_id", t.ID.String()).Msg("Skipping test with malformed window")
			continue
		}
		items = append(items, model.TestListItem{
			ID:         t.ID,
			Name:       t.Name,
			Date:       t.Date,
			StartTime:  t.StartTime,
			EndTime:    t.EndTime,
			TotalMarks: t.TotalMarks,
			Status:     string(status),
			Submitted:  taken[t.ID],
		})
	}
	return items, nil
}
