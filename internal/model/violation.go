package model

import (
	"time"

	"github.com/google/uuid"
)

// ViolationKind identifies the proctoring rule a client reported as broken.
type ViolationKind string

const (
	ViolationFullscreenExit ViolationKind = "FULLSCREEN_EXIT"
	ViolationTabSwitch      ViolationKind = "TAB_SWITCH"
)

// Violation is a single proctoring event reported by the exam client while a
// student was taking a test. Events are queued and persisted asynchronously;
// they are an audit trail, not an enforcement mechanism.
type Violation struct {
	ID         int64         `json:"id"`
	TestID     uuid.UUID     `json:"test_id"`
	StudentID  int           `json:"student_id"`
	Kind       ViolationKind `json:"kind"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// ReportViolationRequest is the payload for reporting a proctoring event.
type ReportViolationRequest struct {
	Kind ViolationKind `json:"kind" binding:"required,oneof=FULLSCREEN_EXIT TAB_SWITCH"`
}
