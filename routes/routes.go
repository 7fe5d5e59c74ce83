package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/chatbot"
	"github.com/immsamyak/ClassTrack/config"
	"github.com/immsamyak/ClassTrack/handlers"
	"github.com/immsamyak/ClassTrack/middlewares"
	"github.com/immsamyak/ClassTrack/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	store := chatbot.NewStore(db)

	auth := handlers.NewAuthHandler(db, cfg.JWTSecret)
	std := handlers.NewStudentHandler(db)
	tch := handlers.NewTeacherHandler(db)
	sub := handlers.NewSubjectHandler(db)
	att := handlers.NewAttendanceHandler(db)
	mrk := handlers.NewMarksHandler(db)
	set := handlers.NewSettingsHandler(db)
	dash := handlers.NewDashboardHandler(store)
	chat := handlers.NewChatHandler(store)
	health := handlers.NewHealthHandler()

	// Public
	e.GET("/health", health.Check)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// Any authenticated user; the chatbot gates data by role itself.
	chatGroup := e.Group("", authMW)
	chatGroup.POST("/chat", chat.Chat)

	// Admin: people, subjects, settings.
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))
	admin.GET("/students", std.List)
	admin.POST("/students", std.Create)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.GET("/subjects", sub.List)
	admin.POST("/subjects", sub.Create)
	admin.PUT("/subjects/:id", sub.Update)
	admin.DELETE("/subjects/:id", sub.Delete)

	admin.GET("/settings", set.List)
	admin.GET("/settings/:name", set.Get)
	admin.PUT("/settings/:name", set.Save)
	admin.DELETE("/settings/:name", set.Delete)

	// Teachers and admins: attendance, marks, dashboard, read-only rosters.
	staff := e.Group("/staff", authMW, middlewares.RequireRole(models.RoleTeacher, models.RoleAdmin))
	staff.GET("/students", std.List)
	staff.GET("/subjects", sub.List)

	staff.GET("/attendance", att.List)
	staff.POST("/attendance/mark", att.Mark)

	staff.GET("/marks", mrk.List)
	staff.POST("/marks", mrk.Create)
	staff.DELETE("/marks/:id", mrk.Delete)

	staff.GET("/dashboard/summary", dash.Summary)
}
