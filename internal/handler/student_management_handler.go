package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/repository"
	"github.com/examhall/exam-portal-backend/internal/response"
	"github.com/examhall/exam-portal-backend/internal/service"
	"github.com/examhall/exam-portal-backend/internal/validator"
)

// StudentManagementHandler handles the teacher-facing roster endpoints.
type StudentManagementHandler struct {
	studentService *service.StudentService
	teacherService *service.TeacherService
	authService    *service.AuthService
}

// NewStudentManagementHandler creates a new StudentManagementHandler.
func NewStudentManagementHandler(
	studentService *service.StudentService,
	teacherService *service.TeacherService,
	authService *service.AuthService,
) *StudentManagementHandler {
	return &StudentManagementHandler{
		studentService: studentService,
		teacherService: teacherService,
		authService:    authService,
	}
}

// ListStudents godoc
// GET /api/v1/teacher/students?status=pending&page=1&per_page=10
// Lists student accounts with an optional status filter.
func (h *StudentManagementHandler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var status *model.StudentStatus
	if raw := c.Query("status"); raw != "" {
		st := model.StudentStatus(raw)
		switch st {
		case model.StudentStatusPending, model.StudentStatusApproved, model.StudentStatusRejected:
			status = &st
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
	}

	students, pagination, err := h.studentService.List(c.Request.Context(), status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// UpdateStudentStatus godoc
// PUT /api/v1/teacher/students/:id/status
// Approves or rejects a student account.
func (h *StudentManagementHandler) UpdateStudentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStudentStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.studentService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// DeleteStudent godoc
// DELETE /api/v1/teacher/students/:id
// Removes a student account. Past submissions are kept.
func (h *StudentManagementHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ResetStudentSession godoc
// POST /api/v1/teacher/students/:id/reset-session
// Clears a student's single-device session so they can log in again.
func (h *StudentManagementHandler) ResetStudentSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Confirm the student exists so a typo'd ID 404s instead of silently
	// deleting nothing.
	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// AddTeacher godoc
// POST /api/v1/teacher/teachers
// Registers another teacher account. No open teacher signup exists.
func (h *StudentManagementHandler) AddTeacher(c *gin.Context) {
	var req model.AddTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Add(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"teacher": teacherProfile(teacher)})
}
