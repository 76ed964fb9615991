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

type AssetRequestController struct {
	requestService services.AssetRequestServiceInterface
	logger         *zap.Logger
}

func NewAssetRequestController(requestService services.AssetRequestServiceInterface, logger *zap.Logger) *AssetRequestController {
	return &AssetRequestController{requestService: requestService, logger: logger}
}

func (c *AssetRequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ошибка при получении списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявки успешно получены", http.StatusOK, totalCount)
}

func (c *AssetRequestController) FindRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	res, err := c.requestService.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка найдена", http.StatusOK)
}

func (c *AssetRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateAssetRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка при создании заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Заявка создана", http.StatusCreated)
}

func (c *AssetRequestController) ApproveRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	if err := c.requestService.ApproveRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Заявка согласована", http.StatusOK)
}

func (c *AssetRequestController) RejectRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	if err := c.requestService.RejectRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Заявка отклонена", http.StatusOK)
}

// ExecuteRequest — терминальная операция: повторный вызов по той же заявке
// вернет 409, а не выполнится второй раз.
func (c *AssetRequestController) ExecuteRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	res, err := c.requestService.ExecuteRequest(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("ошибка при выполнении заявки", zap.Uint64("requestId", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка выполнена", http.StatusOK)
}
