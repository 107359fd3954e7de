// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"vms-service/internal/config"
	"vms-service/internal/db"
	authHandler "vms-service/internal/handlers/auth"
	dashboardHandler "vms-service/internal/handlers/dashboard"
	fuelHandler "vms-service/internal/handlers/fuel"
	maintenanceHandler "vms-service/internal/handlers/maintenance"
	reportHandler "vms-service/internal/handlers/report"
	userHandler "vms-service/internal/handlers/user"
	vehicleHandler "vms-service/internal/handlers/vehicle"
	wsHandler "vms-service/internal/handlers/websocket"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/jwt"
	"vms-service/internal/pkg/session"
	"vms-service/internal/repository/postgres"
	authService "vms-service/internal/service/auth"
	fuelService "vms-service/internal/service/fuel"
	maintenanceService "vms-service/internal/service/maintenance"
	reportService "vms-service/internal/service/report"
	userService "vms-service/internal/service/user"
	vehicleService "vms-service/internal/service/vehicle"
	"vms-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB()
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Session Manager & Rate Limiter -----
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	vehicleRepo := postgres.NewVehicleRepository(pool)
	fuelRepo := postgres.NewFuelRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)

	// ----- Services -----
	authSvc := authService.NewService(userRepo, jwtManager, sessionManager, rateLimiter, logger)
	userSvc := userService.NewService(userRepo, sessionManager, logger)
	vehicleSvc := vehicleService.NewService(vehicleRepo, userRepo, logger)
	fuelSvc := fuelService.NewService(fuelRepo, vehicleRepo, userRepo, logger)
	maintenanceSvc := maintenanceService.NewService(maintenanceRepo, vehicleRepo, hub, logger)
	reportSvc := reportService.NewService(vehicleRepo, fuelRepo, maintenanceRepo, logger)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authSvc)
	userHandlerInst := userHandler.NewUserHandler(userSvc)
	vehicleHandlerInst := vehicleHandler.NewVehicleHandler(vehicleSvc)
	fuelHandlerInst := fuelHandler.NewFuelHandler(fuelSvc)
	maintenanceHandlerInst := maintenanceHandler.NewMaintenanceHandler(maintenanceSvc)
	dashboardHandlerInst := dashboardHandler.NewDashboardHandler(reportSvc)
	reportHandlerInst := reportHandler.NewReportHandler(reportSvc)
	wsHandlerInst := wsHandler.NewWSHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionManager)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:        authHandlerInst,
		UserHandler:        userHandlerInst,
		VehicleHandler:     vehicleHandlerInst,
		FuelHandler:        fuelHandlerInst,
		MaintenanceHandler: maintenanceHandlerInst,
		DashboardHandler:   dashboardHandlerInst,
		ReportHandler:      reportHandlerInst,
		WSHandler:          wsHandlerInst,
		AuthMiddleware:     authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// Periodic overdue maintenance sweep pushed to dashboard clients.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			maintenanceSvc.BroadcastOverdueAlerts(ctx)
		}
	}()

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
