package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type LoanController struct {
	loanService services.LoanServiceInterface
	logger      *zap.Logger
}

func NewLoanController(loanService services.LoanServiceInterface, logger *zap.Logger) *LoanController {
	return &LoanController{loanService: loanService, logger: logger}
}

func (c *LoanController) GetLoans(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.loanService.GetLoans(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ошибка при получении списка выдач", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Выдачи успешно получены", http.StatusOK, totalCount)
}

func (c *LoanController) CreateLoan(ctx echo.Context) error {
	var payload dto.CreateLoanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.loanService.CreateLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка при создании выдачи", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Выдача оформлена", http.StatusCreated)
}

func (c *LoanController) ReturnLoan(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	res, err := c.loanService.ReturnLoan(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Возврат оформлен", http.StatusOK)
}
