package routes

import (
	"net/http"
	"time"

	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/handlers"
	"tillpoint/middleware"
	"tillpoint/services/access"
	"tillpoint/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every handler the router needs.
type HandlerBundle struct {
	StaffRepo     staffRepo.StaffRepository
	Staff         *handlers.StaffHandler
	Notifications *handlers.NotificationHandler
	Orders        *handlers.OrderHandler
	Storage       *handlers.StorageHandler
}

// RegisterAuthRoutes registers sign-in and password reset endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Staff.LoginHandler)
		api.POST("/forgot-password", hb.Staff.InitiatePasswordResetHandler)
		api.POST("/reset-password", hb.Staff.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
		api.POST("/logout", hb.Staff.LogoutHandler)
	}
}

// RegisterStaffRoutes registers staff account management endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/staff")
	api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
	{
		api.GET("/id/:id", hb.Staff.GetStaffByIDHandler)
		api.PUT("/profile", hb.Staff.UpdateStaffHandler)
		api.PUT("/password", hb.Staff.UpdatePasswordHandler)
		api.PUT("/fcm-token", hb.Staff.UpdateFCMTokenHandler)

		// Account administration requires the admin role.
		admin := api.Group("")
		admin.Use(middleware.RequireRole(string(access.RoleAdmin)))
		admin.POST("/register", hb.Staff.RegisterStaffHandler)
		admin.GET("", hb.Staff.GetAllStaffHandler)
		admin.DELETE("/:id", hb.Staff.DeleteStaffHandler)
	}
}

// RegisterNotificationRoutes registers the live notification view endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.Notifications.ListHandler)
		api.POST("/ack", hb.Notifications.AcknowledgeAllHandler)
		api.GET("/stream", hb.Notifications.StreamHandler)
	}
}

// RegisterOrderRoutes sets up the endpoints for the till order lifecycle.
func RegisterOrderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/orders")
	api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.Orders.ListOrdersHandler)
		api.GET("/:id", hb.Orders.GetOrderHandler)
		api.POST("", middleware.RequireRole(string(access.RoleCashier), string(access.RoleAdmin)), hb.Orders.CreateOrderHandler)
		api.PUT("/:id/status", middleware.RequireRole(string(access.RoleCashier), string(access.RoleKitchen), string(access.RoleAdmin)), hb.Orders.AdvanceStatusHandler)
	}
}

// RegisterStorageRoutes sets up menu image storage endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
	api.Use(middleware.RequireRole(string(access.RoleAdmin), string(access.RoleManager)))
	{
		api.POST("/upload", hb.Storage.UploadFileHandler)
		api.GET("/url", hb.Storage.GetDownloadURLHandler)
		api.DELETE("", hb.Storage.DeleteFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterPageRoutes serves the dashboard shell for every non-API path,
// fronted by the navigation access guard.
func RegisterPageRoutes(r *gin.Engine, policy *access.RoutePolicy) {
	shell := func(c *gin.Context) {
		c.File("./web/dist/index.html")
	}
	r.NoRoute(middleware.AccessGuard(policy), shell)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle, policy *access.RoutePolicy) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterPageRoutes(r, policy)
}
