package app

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/categories", c.category.ListCategories)
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/me", c.user.GetProfile)
	rg.PUT("/users/me", c.user.UpdateProfile)
	rg.PUT("/users/me/password", c.user.ChangePassword)

	rg.GET("/courses/:id/curriculum", c.course.GetCurriculum)
	rg.GET("/courses/:id/modules", c.module.ListByCourse)
	rg.GET("/modules/:id/lessons", c.lesson.ListByModule)
	rg.GET("/lessons/:id", c.lesson.GetLesson)

	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.DELETE("/courses/:id/enroll", c.enrollment.Unenroll)
	rg.GET("/enrollments", c.enrollment.ListMyEnrollments)
	rg.GET("/courses/:id/progress", c.enrollment.GetProgress)

	rg.POST("/lessons/:id/complete", c.completion.MarkComplete)
	rg.DELETE("/lessons/:id/complete", c.completion.UnmarkComplete)
	rg.GET("/lessons/:id/complete", c.completion.GetCompletionStatus)
	rg.GET("/completions", c.completion.ListCompleted)

	rg.GET("/quizzes", c.quiz.ListMyQuizzes)
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.GET("/lessons/:id/quizzes", c.quiz.ListByLesson)
	rg.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
	rg.GET("/quizzes/:id/results", c.quiz.GetResults)
	rg.GET("/quizzes/:id/attempts", c.quiz.GetAllAttempts)
	rg.GET("/quizzes/:id/attempt-info", c.quiz.GetAttemptInfo)

	rg.GET("/assignments/:id", c.assignment.GetAssignment)
	rg.GET("/lessons/:id/assignments", c.assignment.ListByLesson)
	rg.POST("/assignments/:id/submit", c.assignment.Submit)
	rg.GET("/assignments/:id/submission", c.assignment.GetMySubmission)
	rg.DELETE("/assignments/:id/submission", c.assignment.DeleteMySubmission)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.GET("/courses", c.course.ListMyCourses)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.GET("/courses/:id/enrollments", c.enrollment.ListCourseEnrollments)
		instructor.GET("/courses/:id/completions", c.completion.ListCourseCompletions)

		instructor.POST("/modules", c.module.CreateModule)
		instructor.PUT("/modules/:id", c.module.UpdateModule)
		instructor.DELETE("/modules/:id", c.module.DeleteModule)

		instructor.POST("/lessons", c.lesson.CreateLesson)
		instructor.PUT("/lessons/:id", c.lesson.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.lesson.DeleteLesson)

		instructor.POST("/quizzes", c.quiz.CreateQuiz)
		instructor.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		instructor.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		instructor.POST("/assignments", c.assignment.CreateAssignment)
		instructor.GET("/assignments", c.assignment.ListMyAssignments)
		instructor.PUT("/assignments/:id", c.assignment.UpdateAssignment)
		instructor.DELETE("/assignments/:id", c.assignment.DeleteAssignment)
		instructor.GET("/assignments/:id/submissions", c.assignment.ListSubmissions)
		instructor.PUT("/submissions/:id/grade", c.assignment.GradeSubmission)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)

		admin.GET("/courses", c.course.ListAllCourses)
		admin.GET("/enrollments", c.enrollment.ListAllEnrollments)

		admin.POST("/reports/enrollments", c.report.GenerateEnrollmentReport)
		admin.POST("/reports/courses/:id/progress", c.report.GenerateCourseProgressReport)
		admin.POST("/reports/quizzes/:id/results", c.report.GenerateQuizResultsReport)
		admin.GET("/reports", c.report.ListReports)
		admin.GET("/reports/:id", c.report.GetReport)
		admin.DELETE("/reports/:id", c.report.DeleteReport)
	}
}
