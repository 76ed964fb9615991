package main

import (
	"context"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"asset-system/internal/listeners"
	"asset-system/internal/routes"
	"asset-system/pkg/config"
	"asset-system/pkg/database/postgresql"
	applogger "asset-system/pkg/logger"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"
	"asset-system/pkg/validation"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				utils.ErrorResponse(c, echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера"))
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Validator = validation.New()

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	logger.Info("✅ Подключено к Redis", zap.String("address", cfg.Redis.Address))

	jwtSvc := service.NewJWTService(
		cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	bus := eventbus.New(logger)
	listeners.NewExecutionListener(logger).Register(bus)

	sched := routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, logger, cfg)

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	sched.Start(schedCtx)

	logger.Info("🚀 Сервер запущен на :" + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
