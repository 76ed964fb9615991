package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runAssetRouter(g *echo.Group, ctrl *controllers.AssetController) {
	g.GET("/assets", ctrl.GetAssets)
	g.GET("/assets/:id", ctrl.FindAsset)
	g.POST("/assets", ctrl.CreateAsset)
	g.PUT("/assets/:id", ctrl.UpdateAsset)
}
