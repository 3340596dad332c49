package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/controllers"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth     *controllers.AuthController
	Twilio   *controllers.TwilioController
	Student  *controllers.StudentController
	Teacher  *controllers.TeacherController
	Class    *controllers.ClassController
	Semester *controllers.SemesterController
	News     *controllers.NewsController
	Account  *controllers.AccountController
	Upload   *controllers.UploadController
	Chat     *controllers.ChatController
	Health   *controllers.HealthController
}

// SetupRouter configures all application routes. limiter may be nil.
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", gin.WrapH(metricsHandler))

	api := router.Group("/api")
	api.GET("/health", c.Health.Health)

	// --- Public routes ---
	public := api.Group("")
	if limiter != nil {
		public.Use(limiter.Handler())
	}
	{
		public.POST("/auth/login", c.Auth.Login)

		twilio := public.Group("/twilio")
		twilio.POST("/send-code", c.Twilio.SendCode)
		twilio.POST("/verify-code", c.Twilio.VerifyCode)
		twilio.POST("/reset-password", c.Twilio.ResetPassword)
	}

	// --- Admin routes ---
	admin := api.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))

	admin.GET("/auth/profile", c.Auth.Profile)

	students := admin.Group("/student")
	{
		students.GET("", c.Student.GetStudents)
		students.POST("", c.Student.CreateStudent)
		students.GET("/export", c.Student.ExportStudents)
		students.POST("/import", c.Student.ImportStudents)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.PATCH("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
		students.POST("/:id/documents/:kind", c.Student.UploadDocument)
	}

	teachers := admin.Group("/teacher")
	{
		teachers.GET("", c.Teacher.GetTeachers)
		teachers.POST("", c.Teacher.CreateTeacher)
		teachers.GET("/:id", c.Teacher.GetTeacher)
		teachers.PUT("/:id", c.Teacher.UpdateTeacher)
		teachers.PATCH("/:id", c.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", c.Teacher.DeleteTeacher)
		teachers.POST("/:id/avatar", c.Teacher.UploadAvatar)
	}

	classes := admin.Group("/class")
	{
		classes.GET("", c.Class.GetClasses)
		classes.POST("", c.Class.CreateClass)
		classes.POST("/transfer", c.Class.TransferStudents)
		classes.GET("/teacher/:teacherId", c.Class.GetClassesByTeacher)
		classes.GET("/student/:studentId", c.Class.GetClassOfStudent)
		classes.GET("/:id", c.Class.GetClass)
		classes.PUT("/:id", c.Class.ReplaceClass)
		classes.DELETE("/:id", c.Class.DeleteClass)
		classes.GET("/:id/students", c.Class.GetClassStudents)
		classes.POST("/:id/students", c.Class.AddStudents)
		classes.POST("/:id/students/remove", c.Class.RemoveStudents)
		classes.PATCH("/:id/teacher", c.Class.UpdateClassTeacher)
		classes.PATCH("/:id/semester", c.Class.ChangeSemester)
	}

	semesters := admin.Group("/semester")
	{
		semesters.GET("", c.Semester.GetSemesters)
		semesters.POST("", c.Semester.CreateSemester)
		semesters.GET("/:id", c.Semester.GetSemester)
		semesters.PUT("/:id", c.Semester.UpdateSemester)
		semesters.DELETE("/:id", c.Semester.DeleteSemester)
	}

	news := admin.Group("/news")
	{
		news.GET("", c.News.GetNews)
		news.POST("", c.News.CreateArticle)
		news.GET("/:id", c.News.GetArticle)
		news.PUT("/:id", c.News.UpdateArticle)
		news.DELETE("/:id", c.News.DeleteArticle)
	}

	accounts := admin.Group("/account")
	{
		accounts.GET("", c.Account.GetAccounts)
		accounts.POST("", c.Account.CreateAccount)
		accounts.GET("/:id", c.Account.GetAccount)
		accounts.PUT("/:id", c.Account.UpdateAccount)
		accounts.PUT("/:id/password", c.Account.ChangePassword)
		accounts.DELETE("/:id", c.Account.DeleteAccount)
	}

	admin.POST("/upload", c.Upload.Upload)
	admin.DELETE("/upload", c.Upload.Delete)
	admin.POST("/chat", c.Chat.Chat)

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	})
}
