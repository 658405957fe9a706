package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/examhall/exam-portal-backend/internal/exam"
	"github.com/examhall/exam-portal-backend/internal/repository"
	"github.com/examhall/exam-portal-backend/internal/sheet"
)

// ReportService assembles completion reports and their xlsx downloads.
type ReportService struct {
	testRepo       *repository.TestRepository
	studentRepo    *repository.StudentRepository
	submissionRepo *repository.SubmissionRepository
	violationRepo  *repository.ViolationRepository
	log            zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	testRepo *repository.TestRepository,
	studentRepo *repository.StudentRepository,
	submissionRepo *repository.SubmissionRepository,
	violationRepo *repository.ViolationRepository,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		testRepo:       testRepo,
		studentRepo:    studentRepo,
		submissionRepo: submissionRepo,
		violationRepo:  violationRepo,
		log:            log.With().Str("component", "report_service").Logger(),
	}
}

// BuildReport partitions the approved roster into submitted and
// not-submitted halves for one test.
func (s *ReportService) BuildReport(ctx context.Context, testID uuid.UUID) (*exam.Report, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	roster, err := s.studentRepo.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	rows, err := s.submissionRepo.ListSubmittedRows(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	report := exam.BuildReport(test, roster, rows)
	return &report, nil
}

// BuildReportWorkbook renders the submitted rows of a report as an xlsx
// download. Returns the workbook and the attachment filename.
func (s *ReportService) BuildReportWorkbook(ctx context.Context, testID uuid.UUID) (*excelize.File, string, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.submissionRepo.ListSubmittedRows(ctx, testID)
	if err != nil {
		return nil, "", fmt.Errorf("list submissions: %w", err)
	}

	f, err := sheet.BuildResultWorkbook(test.Name, rows)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}

	s.log.Info().
		Str("test_id", testID.String()).
		Int("rows", len(rows)).
		Msg("Report workbook generated")
	return f, sheet.ResultFilename(test.Name), nil
}

// ListViolations retrieves the proctoring audit trail for a test.
func (s *ReportService) ListViolations(ctx context.Context, testID uuid.UUID) ([]repository.ViolationRow, error) {
	// Test existence is checked so a bad ID 404s instead of returning an
	// empty list.
	if _, err := s.testRepo.GetByID(ctx, testID); err != nil {
		return nil, err
	}

	rows, err := s.violationRepo.ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.ViolationRow{}
	}
	return rows, nil
}
