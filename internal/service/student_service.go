package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
	"github.com/examhall/exam-portal-backend/internal/response"
)

// StudentService handles student accounts: signup, approval and roster
// management.
type StudentService struct {
	studentRepo *repository.StudentRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, authService *AuthService, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		authService: authService,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// Signup registers a new student account. The account starts pending and
// cannot take tests until a teacher approves it.
func (s *StudentService) Signup(ctx context.Context, req *model.StudentSignupRequest) (*model.Student, error) {
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	student := &model.Student{
		Name:         req.Name,
		Email:        req.Email,
		PRN:          req.PRN,
		Status:       model.StudentStatusPending,
		PasswordHash: hash,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("student_id", student.ID).
		Str("prn", student.PRN).
		Msg("Student signed up, awaiting approval")
	return student, nil
}

// GetByID retrieves a student account.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a student account by email for login.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.studentRepo.GetByEmail(ctx, email)
}

// List retrieves students for the management screen, with an optional
// status filter.
func (s *StudentService) List(ctx context.Context, status *model.StudentStatus, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	students, total, err := s.studentRepo.ListPaginated(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return students, pagination, nil
}

// UpdateStatus approves or rejects a student account. Rejecting also kills
// any live session so the student is locked out immediately.
func (s *StudentService) UpdateStatus(ctx context.Context, id int, status model.StudentStatus) error {
	if err := s.studentRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if status != model.StudentStatusApproved {
		if err := s.authService.ResetStudentSession(ctx, id); err != nil {
			s.log.Warn().Err(err).Int("student_id", id).Msg("Failed to clear session after status change")
		}
	}

	s.log.Info().Int("student_id", id).Str("status", string(status)).Msg("Student status updated")
	return nil
}

// Delete removes a student account and clears any live session. Past
// submissions are kept; reports drop them via the roster join.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.authService.ResetStudentSession(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("student_id", id).Msg("Failed to clear session after delete")
	}

	s.log.Info().Int("student_id", id).Msg("Student deleted")
	return nil
}
