package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runSchedulerRouter(g *echo.Group, ctrl *controllers.SchedulerController) {
	g.POST("/scheduler/run", ctrl.RunSweep)
}
