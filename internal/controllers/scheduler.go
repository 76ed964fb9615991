package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/scheduler"
	"asset-system/pkg/utils"
)

type SchedulerController struct {
	scheduler *scheduler.Scheduler
	logger    *zap.Logger
}

func NewSchedulerController(sched *scheduler.Scheduler, logger *zap.Logger) *SchedulerController {
	return &SchedulerController{scheduler: sched, logger: logger}
}

// RunSweep — ручной запуск полного прохода по срокам, вне расписания.
func (c *SchedulerController) RunSweep(ctx echo.Context) error {
	result, err := c.scheduler.RunNow(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ручной проход по срокам завершился ошибкой", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, result, "Проход по срокам выполнен", http.StatusOK)
}
