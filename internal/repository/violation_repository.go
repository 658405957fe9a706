package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/exam-portal-backend/internal/model"
)

// ViolationRow is a violation joined with the offending student for display.
type ViolationRow struct {
	ID         int64               `json:"id"`
	StudentID  int                 `json:"student_id"`
	Name       string              `json:"student_name"`
	PRN        string              `json:"prn"`
	Kind       model.ViolationKind `json:"kind"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// ViolationRepository handles proctoring violation reads. Writes go through
// the background worker, which batches directly against the pool.
type ViolationRepository struct {
	pool *pgxpool.Pool
}

// NewViolationRepository creates a new ViolationRepository.
func NewViolationRepository(pool *pgxpool.Pool) *ViolationRepository {
	return &ViolationRepository{pool: pool}
}

// ListByTest retrieves all violations recorded for a test, newest first.
// Violations whose student was deleted are dropped by the join.
func (r *ViolationRepository) ListByTest(ctx context.Context, testID uuid.UUID) ([]ViolationRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT v.id, v.student_id, st.name, st.prn, v.kind, v.occurred_at
		 FROM violations v
		 JOIN students st ON v.student_id = st.id
		 WHERE v.test_id = $1
		 ORDER BY v.occurred_at DESC`, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ViolationRow
	for rows.Next() {
		var row ViolationRow
		if err := rows.Scan(&row.ID, &row.StudentID, &row.Name, &row.PRN, &row.Kind, &row.OccurredAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
