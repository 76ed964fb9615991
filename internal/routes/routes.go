package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/repositories"
	"asset-system/internal/scheduler"
	"asset-system/internal/services"
	"asset-system/pkg/config"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
// Возвращает планировщик: его фоновые циклы запускает main.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) *scheduler.Scheduler {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api/v1")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	employeeRepo := repositories.NewEmployeeRepository(dbConn)
	assetRepo := repositories.NewAssetRepository(dbConn)
	requestRepo := repositories.NewAssetRequestRepository(dbConn)
	loanRepo := repositories.NewLoanRepository(dbConn)
	licenseRepo := repositories.NewLicenseRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	assetService := services.NewAssetService(assetRepo, logger)
	notificationService := services.NewNotificationService(
		notificationRepo, cacheRepo, cfg.Scheduler.SuppressionWindow, logger)
	engine := services.NewExecutionEngine(txManager, requestRepo, assetRepo, logger)
	requestService := services.NewAssetRequestService(
		engine, requestRepo, assetRepo, notificationService, bus, logger)
	loanService := services.NewLoanService(loanRepo, assetRepo, logger)
	sweepService := services.NewSweepService(
		loanRepo, licenseRepo, employeeRepo, notificationService,
		cfg.Scheduler.DueSoonDays, cfg.Scheduler.LicenseWindowDays, logger)
	reportService := services.NewReportService(assetRepo, logger)

	sched := scheduler.New(sweepService,
		cfg.Scheduler.LoanSweepInterval, cfg.Scheduler.LicenseSweepInterval, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	assetController := controllers.NewAssetController(assetService, logger)
	requestController := controllers.NewAssetRequestController(requestService, logger)
	loanController := controllers.NewLoanController(loanService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)
	reportController := controllers.NewReportController(reportService, logger)
	schedulerController := controllers.NewSchedulerController(sched, logger)

	// --- 4. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runAssetRouter(secureGroup, assetController)
	runAssetRequestRouter(secureGroup, requestController)
	runLoanRouter(secureGroup, loanController)
	runNotificationRouter(secureGroup, notificationController)
	runReportRouter(secureGroup, reportController)
	runSchedulerRouter(secureGroup, schedulerController)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
	return sched
}
