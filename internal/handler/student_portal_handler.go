package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/examhall/exam-portal-backend/internal/config"
	"github.com/examhall/exam-portal-backend/internal/middleware"
	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
	"github.com/examhall/exam-portal-backend/internal/response"
	"github.com/examhall/exam-portal-backend/internal/service"
	"github.com/examhall/exam-portal-backend/internal/validator"
	"github.com/examhall/exam-portal-backend/internal/worker"
)

// StudentPortalHandler handles the student-facing exam endpoints.
type StudentPortalHandler struct {
	testService       *service.TestService
	submissionService *service.SubmissionService
	rdb               *redis.Client
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	testService *service.TestService,
	submissionService *service.SubmissionService,
	rdb *redis.Client,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		testService:       testService,
		submissionService: submissionService,
		rdb:               rdb,
	}
}

// ListTests godoc
// GET /api/v1/student/tests
// Lists every test with its window status and whether this student submitted.
func (h *StudentPortalHandler) ListTests(c *gin.Context) {
	claims := middleware.GetClaims(c)

	tests, err := h.submissionService.ListTestsForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// GetTestPaper godoc
// GET /api/v1/student/tests/:test_id
// Returns the question paper without correct answers. Served from Redis.
func (h *StudentPortalHandler) GetTestPaper(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.testService.GetPayload(c.Request.Context(), testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": payload})
}

// SubmitTest godoc
// POST /api/v1/student/tests/:test_id/submit
// Grades and records the student's answers. Accepted once, while live.
func (h *StudentPortalHandler) SubmitTest(c *gin.Context) {
	claims := middleware.GetClaims(c)

	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), claims.UserID, testID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrTestNotLive):
			response.Fail(c, http.StatusForbidden, response.ErrTestNotLive)
		case errors.Is(err, repository.ErrDuplicateSubmission):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// ListMySubmissions godoc
// GET /api/v1/student/submissions
// Returns the student's own submissions with their parent tests.
func (h *StudentPortalHandler) ListMySubmissions(c *gin.Context) {
	claims := middleware.GetClaims(c)

	subs, err := h.submissionService.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

// ReportViolation godoc
// POST /api/v1/student/tests/:test_id/violations
// Queues a proctoring event. The write is async; the client never waits on
// PostgreSQL here.
func (h *StudentPortalHandler) ReportViolation(c *gin.Context) {
	claims := middleware.GetClaims(c)

	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReportViolationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	event := worker.ViolationEvent{
		StudentID: claims.UserID,
		TestID:    testID.String(),
		Kind:      string(req.Kind),
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.rdb.RPush(c.Request.Context(), config.WorkerKey.PersistViolationsQueue, data).Err(); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{})
}
