// internal/app/router.go
package app

import (
	authHandler "vms-service/internal/handlers/auth"
	dashboardHandler "vms-service/internal/handlers/dashboard"
	fuelHandler "vms-service/internal/handlers/fuel"
	maintenanceHandler "vms-service/internal/handlers/maintenance"
	reportHandler "vms-service/internal/handlers/report"
	userHandler "vms-service/internal/handlers/user"
	vehicleHandler "vms-service/internal/handlers/vehicle"
	wsHandler "vms-service/internal/handlers/websocket"
	"vms-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	UserHandler        *userHandler.UserHandler
	VehicleHandler     *vehicleHandler.VehicleHandler
	FuelHandler        *fuelHandler.FuelHandler
	MaintenanceHandler *maintenanceHandler.MaintenanceHandler
	DashboardHandler   *dashboardHandler.DashboardHandler
	ReportHandler      *reportHandler.ReportHandler
	WSHandler          *wsHandler.WSHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WSHandler.Connect)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/refresh", h.AuthHandler.Refresh)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/logout-all", h.AuthHandler.LogoutAll)
		authProtected.PUT("/change-password", h.AuthHandler.ChangePassword)
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.PUT("/me", h.AuthHandler.UpdateProfile)
		authProtected.GET("/sessions", h.AuthHandler.Sessions)
	}

	// ==================== Users (admin) ====================
	users := api.Group("/users")
	users.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		users.GET("", h.UserHandler.ListUsers)
		users.GET("/:id", h.UserHandler.GetUser)
		users.PUT("/:id/roles", h.UserHandler.UpdateUserRoles)
		users.PUT("/:id/activate", h.UserHandler.ActivateUser)
		users.PUT("/:id/deactivate", h.UserHandler.DeactivateUser)
	}

	// ==================== Vehicles ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware.Auth())
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/mine", h.VehicleHandler.MyVehicles)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)
		vehicles.GET("/:id/fuel", h.FuelHandler.ListVehicleFuelRecords)
		vehicles.GET("/:id/maintenance", h.MaintenanceHandler.ListVehicleMaintenance)

		managed := vehicles.Group("")
		managed.Use(h.AuthMiddleware.RequireRole("admin", "manager"))
		{
			managed.POST("", h.VehicleHandler.CreateVehicle)
			managed.PUT("/:id", h.VehicleHandler.UpdateVehicle)
			managed.PUT("/:id/status", h.VehicleHandler.UpdateVehicleStatus)
			managed.POST("/:id/assign", h.VehicleHandler.AssignVehicle)
			managed.POST("/:id/unassign", h.VehicleHandler.UnassignVehicle)
			managed.DELETE("/:id", h.VehicleHandler.DeleteVehicle)
		}
	}

	// ==================== Fuel Records ====================
	fuel := api.Group("/fuel")
	fuel.Use(h.AuthMiddleware.Auth())
	{
		fuel.GET("", h.FuelHandler.ListFuelRecords)
		fuel.GET("/analytics", h.FuelHandler.FuelAnalytics)
		fuel.GET("/:id", h.FuelHandler.GetFuelRecord)
		fuel.POST("", h.FuelHandler.CreateFuelRecord)
		fuel.PUT("/:id", h.FuelHandler.UpdateFuelRecord)
		fuel.DELETE("/:id", h.AuthMiddleware.RequireRole("admin", "manager"), h.FuelHandler.DeleteFuelRecord)
	}

	// ==================== Maintenance Records ====================
	maintenance := api.Group("/maintenance")
	maintenance.Use(h.AuthMiddleware.Auth())
	{
		maintenance.GET("", h.MaintenanceHandler.ListMaintenanceRecords)
		maintenance.GET("/overdue", h.MaintenanceHandler.ListOverdueMaintenance)
		maintenance.GET("/upcoming", h.MaintenanceHandler.ListUpcomingMaintenance)
		maintenance.GET("/:id", h.MaintenanceHandler.GetMaintenanceRecord)

		managed := maintenance.Group("")
		managed.Use(h.AuthMiddleware.RequireRole("admin", "manager"))
		{
			managed.POST("", h.MaintenanceHandler.CreateMaintenanceRecord)
			managed.PUT("/:id", h.MaintenanceHandler.UpdateMaintenanceRecord)
			managed.PUT("/:id/status", h.MaintenanceHandler.ChangeMaintenanceStatus)
			managed.DELETE("/:id", h.MaintenanceHandler.DeleteMaintenanceRecord)
		}
	}

	// ==================== Dashboard & Reports ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole("admin", "manager"))
	{
		dashboard.GET("/stats", h.DashboardHandler.Stats)
		dashboard.GET("/cost-trends", h.DashboardHandler.CostTrends)
		dashboard.GET("/utilization", h.DashboardHandler.Utilization)
		dashboard.GET("/top-maintenance", h.DashboardHandler.TopMaintenanceVehicles)
	}

	reports := api.Group("/reports")
	reports.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole("admin", "manager"))
	{
		reports.GET("/export", h.ReportHandler.ExportCSV)
		reports.GET("/fuel-efficiency", h.ReportHandler.FuelEfficiencyReport)
	}
}
