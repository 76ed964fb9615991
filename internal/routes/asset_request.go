package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runAssetRequestRouter(g *echo.Group, ctrl *controllers.AssetRequestController) {
	g.GET("/asset-requests", ctrl.GetRequests)
	g.GET("/asset-requests/:id", ctrl.FindRequest)
	g.POST("/asset-requests", ctrl.CreateRequest)
	g.POST("/asset-requests/:id/approve", ctrl.ApproveRequest)
	g.POST("/asset-requests/:id/reject", ctrl.RejectRequest)
	g.POST("/asset-requests/:id/execute", ctrl.ExecuteRequest)
}
