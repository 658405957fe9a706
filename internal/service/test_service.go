package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/examhall/exam-portal-backend/internal/config"
	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
)

// Domain Errors
var (
	ErrNoQuestions     = errors.New("test has no questions")
	ErrStartAfterEnd   = errors.New("start time must be before end time")
	ErrAnswerNotOption = errors.New("correct answer must match one of the options")
	ErrMarksMismatch   = errors.New("total marks does not match question count times marks per question")
)

// TestService handles test lifecycle and the Redis fast lane for papers
// and answer keys.
type TestService struct {
	testRepo *repository.TestRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(testRepo *repository.TestRepository, rdb *redis.Client, log zerolog.Logger) *TestService {
	return &TestService{
		testRepo: testRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "test_service").Logger(),
	}
}

// Create validates and persists a new test with its questions, then warms
// the Redis cache so students hit RAM, not PostgreSQL, when the window opens.
func (s *TestService) Create(ctx context.Context, teacherID int, req *model.CreateTestRequest) (*model.Test, error) {
	if req.StartTime >= req.EndTime {
		return nil, ErrStartAfterEnd
	}

	for _, q := range req.Questions {
		if !optionListContains(q.Options, q.CorrectAnswer) {
			return nil, ErrAnswerNotOption
		}
	}

	totalMarks := len(req.Questions) * req.MarksPerQuestion
	if req.TotalMarks != nil && *req.TotalMarks != totalMarks {
		return nil, ErrMarksMismatch
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	test := &model.Test{
		Name:       req.Name,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalMarks: totalMarks,
		CreatedBy:  teacherID,
		Questions:  make([]model.Question, len(req.Questions)),
	}
	for i, q := range req.Questions {
		test.Questions[i] = model.Question{
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			OrderNum:      i + 1,
		}
	}

	if err := s.testRepo.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}

	// A cold cache is recoverable (GetPayload self-heals), so a warm failure
	// does not fail the create.
	if err := s.WarmTestCache(ctx, test); err != nil {
		s.log.Warn().Err(err).Str("test_id", test.ID.String()).Msg("Failed to warm cache after create")
	}

	s.log.Info().
		Str("test_id", test.ID.String()).
		Int("questions", len(test.Questions)).
		Int("teacher_id", teacherID).
		Msg("Test created")
	return test, nil
}

// GetByID retrieves a test with its questions from PostgreSQL.
func (s *TestService) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	return s.testRepo.GetWithQuestions(ctx, id)
}

// ListAll retrieves every test without questions.
func (s *TestService) ListAll(ctx context.Context) ([]model.Test, error) {
	tests, err := s.testRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if tests == nil {
		tests = []model.Test{}
	}
	return tests, nil
}

// Delete removes a test and drops its cache entries. Submissions for the
// test are kept.
func (s *TestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.TestPayloadKey(id))
	pipe.Del(ctx, config.CacheKey.TestAnswerKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("test_id", id.String()).Msg("Failed to drop cache entries")
	}

	s.log.Info().Str("test_id", id.String()).Msg("Test deleted")
	return nil
}

// WarmTestCache loads a test's student payload and answer key from
// PostgreSQL into Redis. Used by Create, PrewarmAllCaches and the
// self-healing read path.
func (s *TestService) WarmTestCache(ctx context.Context, test *model.Test) error {
	questions := test.Questions
	if len(questions) == 0 {
		var err error
		questions, err = s.testRepo.ListQuestions(ctx, test.ID)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	studentQuestions := make([]model.QuestionForStudent, len(questions))
	for i, q := range questions {
		studentQuestions[i] = model.QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			OrderNum:     q.OrderNum,
		}
	}

	payload := model.TestPayload{
		TestID:     test.ID,
		Name:       test.Name,
		Date:       test.Date,
		StartTime:  test.StartTime,
		EndTime:    test.EndTime,
		TotalMarks: test.TotalMarks,
		Questions:  studentQuestions,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	answerKey := make(map[string]interface{}, len(questions))
	for _, q := range questions {
		answerKey[q.ID.String()] = q.CorrectAnswer
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.TestPayloadKey(test.ID), payloadJSON, 0)
	pipe.Del(ctx, config.CacheKey.TestAnswerKey(test.ID))
	pipe.HSet(ctx, config.CacheKey.TestAnswerKey(test.ID), answerKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("test_id", test.ID.String()).
		Int("questions", len(questions)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads every test into Redis on application startup so
// the first students through the door never race a cold cache.
func (s *TestService) PrewarmAllCaches(ctx context.Context) error {
	tests, err := s.testRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list tests: %w", err)
	}

	if len(tests) == 0 {
		s.log.Info().Msg("No tests to prewarm")
		return nil
	}

	s.log.Info().Int("count", len(tests)).Msg("Prewarming test caches...")

	warmed := 0
	for i := range tests {
		if err := s.WarmTestCache(ctx, &tests[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("test_id", tests[i].ID.String()).
				Msg("Failed to warm test, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(tests)).
		Msg("Prewarming complete")
	return nil
}

// GetPayload retrieves the student-facing paper, preferring Redis and
// falling back to PostgreSQL with a cache self-heal on miss.
func (s *TestService) GetPayload(ctx context.Context, testID uuid.UUID) (*model.TestPayload, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.TestPayloadKey(testID)).Bytes()
	if err == nil {
		var payload model.TestPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			return &payload, nil
		}
		s.log.Warn().Str("test_id", testID.String()).Msg("Corrupt cached payload, rebuilding")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("test_id", testID.String()).Msg("Redis unavailable, serving payload from PostgreSQL")
	}

	test, err := s.testRepo.GetWithQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}

	if err := s.WarmTestCache(ctx, test); err != nil {
		s.log.Warn().Err(err).Str("test_id", testID.String()).Msg("Cache self-heal failed")
	}

	studentQuestions := make([]model.QuestionForStudent, len(test.Questions))
	for i, q := range test.Questions {
		studentQuestions[i] = model.QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			OrderNum:     q.OrderNum,
		}
	}

	return &model.TestPayload{
		TestID:     test.ID,
		Name:       test.Name,
		Date:       test.Date,
		StartTime:  test.StartTime,
		EndTime:    test.EndTime,
		TotalMarks: test.TotalMarks,
		Questions:  studentQuestions,
	}, nil
}

// GetAnswerKey retrieves the answer key for grading, preferring Redis and
// falling back to PostgreSQL.
func (s *TestService) GetAnswerKey(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	result, err := s.rdb.HGetAll(ctx, config.CacheKey.TestAnswerKey(testID)).Result()
	if err == nil && len(result) > 0 {
		questions := make([]model.Question, 0, len(result))
		for idStr, answer := range result {
			id, err := uuid.Parse(idStr)
			if err != nil {
				s.log.Warn().Str("test_id", testID.String()).Str("key", idStr).Msg("Corrupt answer key entry, rebuilding from PostgreSQL")
				questions = nil
				break
			}
			questions = append(questions, model.Question{ID: id, CorrectAnswer: answer})
		}
		if questions != nil {
			return questions, nil
		}
	} else if err != nil {
		s.log.Warn().Err(err).Str("test_id", testID.String()).Msg("Redis unavailable, grading from PostgreSQL")
	}

	questions, err := s.testRepo.ListQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

func optionListContains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
