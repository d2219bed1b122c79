package routes

import (
	"time"

	"branchbook/handlers"
	"branchbook/middleware"
	"branchbook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterBranchRoutes registers the public branch endpoints.
func RegisterBranchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/branches")
	{
		api.GET("", hb.ListBranchesHandler)
		api.GET("/:id/slots", hb.BranchSlotsHandler)
	}
}

// RegisterAppointmentRoutes registers the user appointment lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(false))
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("/my", hb.MyAppointmentsHandler)
		api.POST("/:id/cancel", hb.CancelAppointmentHandler)
	}
}

// RegisterStaffRoutes registers the employee and admin listings. Each listing
// accepts only its own role.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	employee := r.Group("/api/employee")
	{
		employee.Use(middleware.JWTAuthMiddleware(false), middleware.RequireRoles(models.RoleEmployee))
		employee.GET("/appointments", hb.EmployeeAppointmentsHandler)
	}

	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.JWTAuthMiddleware(false), middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/appointments", hb.AdminAppointmentsHandler)
	}
}

// RegisterChatRoutes registers the assistant endpoints. Chat works anonymously.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("", middleware.JWTAuthMiddleware(true), hb.ChatHandler)
		api.GET("/history", middleware.JWTAuthMiddleware(false), hb.ChatHistoryHandler)
	}
	r.GET("/api/weather", hb.WeatherHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBranchRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}
