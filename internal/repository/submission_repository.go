package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/exam-portal-backend/internal/exam"
	"github.com/examhall/exam-portal-backend/internal/model"
)

// ErrDuplicateSubmission indicates the student already has a submission for this test.
var ErrDuplicateSubmission = errors.New("submission already exists for this test")

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a submission. The UNIQUE (test_id, student_id) constraint
// makes this the single point where at-most-once submission is decided:
// a concurrent or repeated submit hits ON CONFLICT, returns no row, and
// surfaces as ErrDuplicateSubmission.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (test_id, student_id, answers, score)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (test_id, student_id) DO NOTHING
		 RETURNING id, submitted_at`,
		s.TestID, s.StudentID, s.Answers, s.Score,
	).Scan(&s.ID, &s.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicateSubmission
	}
	return err
}

// ListByStudent retrieves all submissions for a student, newest first.
// The test is joined with a LEFT JOIN so submissions survive test deletion;
// Test is nil when the test no longer exists.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int) ([]model.StudentSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.test_id, s.student_id, s.answers, s.score, s.submitted_at,
		        t.id, t.name, t.date, t.total_marks
		 FROM submissions s
		 LEFT JOIN tests t ON s.test_id = t.id
		 WHERE s.student_id = $1
		 ORDER BY s.submitted_at DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.StudentSubmission
	for rows.Next() {
		var s model.StudentSubmission
		var (
			testID     *uuid.UUID
			name       *string
			date       *time.Time
			totalMarks *int
		)
		if err := rows.Scan(&s.ID, &s.TestID, &s.StudentID, &s.Answers, &s.Score, &s.SubmittedAt,
			&testID, &name, &date, &totalMarks); err != nil {
			return nil, err
		}
		if testID != nil {
			s.Test = &model.TestRef{ID: *testID, Name: *name, Date: *date, TotalMarks: *totalMarks}
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListSubmittedRows returns the scored rows for a test report. Only
// submissions whose student still exists are returned; the inner join
// silently drops rows whose student was deleted after submitting.
func (r *SubmissionRepository) ListSubmittedRows(ctx context.Context, testID uuid.UUID) ([]exam.SubmittedRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.id, st.name, st.prn, s.score, s.submitted_at
		 FROM submissions s
		 JOIN students st ON s.student_id = st.id
		 WHERE s.test_id = $1
		 ORDER BY st.name`, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []exam.SubmittedRow
	for rows.Next() {
		var row exam.SubmittedRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.PRN, &row.Score, &row.SubmittedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListTestIDsByStudent returns the set of test IDs the student has submitted.
// Used to flag already-taken tests in the student's test list.
func (r *SubmissionRepository) ListTestIDsByStudent(ctx context.Context, studentID int) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT test_id FROM submissions WHERE student_id = $1`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = true
	}
	return taken, rows.Err()
}
