package model

import "time"

// StudentStatus tracks the approval state of a student account. New signups
// start as pending and cannot take tests until a teacher approves them.
type StudentStatus string

const (
	StudentStatusPending  StudentStatus = "pending"
	StudentStatusApproved StudentStatus = "approved"
	StudentStatusRejected StudentStatus = "rejected"
)

// Student represents a student account. PRN is the institutional identifier
// shown alongside the name in rosters and reports.
type Student struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PRN          string        `json:"prn"`
	Status       StudentStatus `json:"status"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// StudentSignupRequest is the payload for student self-registration.
type StudentSignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	PRN      string `json:"prn" binding:"required,min=4,max=30"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentStatusRequest is the payload for approving or rejecting a
// student account.
type UpdateStudentStatusRequest struct {
	Status StudentStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}
