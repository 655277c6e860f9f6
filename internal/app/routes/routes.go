package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alijimale/institute-backend/internal/app/controllers"
	"github.com/alijimale/institute-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	classController *controllers.ClassController,
	attendanceController *controllers.AttendanceController,
	examController *controllers.ExamController,
	assistantController *controllers.AssistantController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.GET("/health", healthController.Health)

	// Downloads skip the session check; the file id alone gates access.
	api.GET("/exams/download/:fileId", examController.DownloadExam)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/session", authController.Session)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireSession())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetStudents)
			students.POST("", studentController.CreateStudent)
			students.PUT("", studentController.UpdateStudent)
			students.DELETE("", studentController.DeleteStudent)
		}

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("", teacherController.GetTeachers)
			teachers.PUT("", teacherController.UpdateTeacher)
			teachers.DELETE("", teacherController.DeleteTeacher)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.GetClasses)
			classes.POST("", classController.CreateClass)
			classes.PUT("", classController.UpdateClass)
			classes.DELETE("", classController.DeleteClass)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("", attendanceController.GetAttendance)
			attendance.POST("", attendanceController.MarkAttendance)
			attendance.PUT("", attendanceController.UpdateAttendance)
			attendance.DELETE("", attendanceController.DeleteAttendance)
		}

		exams := authenticated.Group("/exams")
		{
			exams.GET("", examController.GetExams)
			exams.POST("", examController.UploadExam)
			exams.PUT("", examController.UpdateExamStatus)
			exams.DELETE("", examController.DeleteExam)
		}

		authenticated.POST("/ai-assistant", assistantController.Chat)
	}

	// Prometheus scrape endpoint, outside the /api group.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
