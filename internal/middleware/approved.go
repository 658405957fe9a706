package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/examhall/exam-portal-backend/internal/response"
	"github.com/examhall/exam-portal-backend/internal/service"
)

// RequireApprovedStudent rejects students whose account has not been
// approved yet (or was rejected). The status lives in PostgreSQL, not in
// the token, so revoking approval takes effect on the next request.
func RequireApprovedStudent(studentService *service.StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		student, err := studentService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if student.Status != model.StudentStatusApproved {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentNotApproved)
			return
		}

		c.Next()
	}
}
