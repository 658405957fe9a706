package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
)

// TeacherService handles teacher accounts.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository, authService *AuthService, log zerolog.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		authService: authService,
		log:         log.With().Str("component", "teacher_service").Logger(),
	}
}

// GetByID retrieves a teacher account.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a teacher account by email for login.
func (s *TeacherService) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	return s.teacherRepo.GetByEmail(ctx, email)
}

// Add creates a new teacher account. Only existing teachers can do this;
// there is no open teacher signup.
func (s *TeacherService) Add(ctx context.Context, req *model.AddTeacherRequest) (*model.Teacher, error) {
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	teacher := &model.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.log.Info().Int("teacher_id", teacher.ID).Msg("Teacher account created")
	return teacher, nil
}
