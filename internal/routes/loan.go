package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runLoanRouter(g *echo.Group, ctrl *controllers.LoanController) {
	g.GET("/loans", ctrl.GetLoans)
	g.POST("/loans", ctrl.CreateLoan)
	g.POST("/loans/:id/return", ctrl.ReturnLoan)
}
