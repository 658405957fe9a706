package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/examhall/exam-portal-backend/internal/config"
	"github.com/examhall/exam-portal-backend/internal/handler"
	"github.com/examhall/exam-portal-backend/internal/middleware"
	"github.com/examhall/exam-portal-backend/internal/response"
	"github.com/examhall/exam-portal-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	StudentPortal *handler.StudentPortalHandler
	Test          *handler.TestHandler
	StudentMgmt   *handler.StudentManagementHandler
	Sheet         *handler.SheetHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	studentService *service.StudentService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Brotli compression, skipping the xlsx download (already deflated).
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Skipper: func(c *gin.Context) bool {
			return strings.HasSuffix(c.FullPath(), "/report/download")
		},
	}))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/signup", handlers.Auth.StudentSignup)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/teacher/me", middleware.RequireTeacherJWT(authService), handlers.Auth.GetTeacherProfile)
	}

	// ─── 2. Student Group (JWT + Single Device + Approved) ─────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
		middleware.RequireApprovedStudent(studentService),
	)
	{
		studentAPI.GET("/tests", handlers.StudentPortal.ListTests)
		studentAPI.GET("/tests/:test_id", handlers.StudentPortal.GetTestPaper)
		studentAPI.POST("/tests/:test_id/submit", handlers.StudentPortal.SubmitTest)
		studentAPI.POST("/tests/:test_id/violations", handlers.StudentPortal.ReportViolation)
		studentAPI.GET("/submissions", handlers.StudentPortal.ListMySubmissions)
	}

	// ─── 3. Teacher Group (JWT) ────────────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		// Test management
		teacherAPI.POST("/tests", handlers.Test.CreateTest)
		teacherAPI.GET("/tests", handlers.Test.ListTests)
		teacherAPI.GET("/tests/:test_id", handlers.Test.GetTest)
		teacherAPI.DELETE("/tests/:test_id", handlers.Test.DeleteTest)

		// Question workbook upload
		teacherAPI.POST("/question-sheets", handlers.Sheet.ParseQuestionSheet)

		// Reporting
		teacherAPI.GET("/tests/:test_id/report", handlers.Test.GetReport)
		teacherAPI.GET("/tests/:test_id/report/download", handlers.Test.DownloadReport)
		teacherAPI.GET("/tests/:test_id/violations", handlers.Test.ListViolations)

		// Roster management
		teacherAPI.GET("/students", handlers.StudentMgmt.ListStudents)
		teacherAPI.PUT("/students/:id/status", handlers.StudentMgmt.UpdateStudentStatus)
		teacherAPI.DELETE("/students/:id", handlers.StudentMgmt.DeleteStudent)
		teacherAPI.POST("/students/:id/reset-session", handlers.StudentMgmt.ResetStudentSession)

		// Teacher accounts
		teacherAPI.POST("/teachers", handlers.StudentMgmt.AddTeacher)
	}

	return router
}
