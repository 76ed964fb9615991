package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runAuthRouter(g *echo.Group, ctrl *controllers.AuthController) {
	g.POST("/auth/login", ctrl.Login)
}
