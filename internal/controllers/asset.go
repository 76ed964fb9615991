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

type AssetController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, logger *zap.Logger) *AssetController {
	return &AssetController{assetService: assetService, logger: logger}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.assetService.GetAssets(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ошибка при получении списка активов", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Активы успешно получены", http.StatusOK, totalCount)
}

func (c *AssetController) FindAsset(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	res, err := c.assetService.FindAsset(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Актив найден", http.StatusOK)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	var payload dto.CreateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.assetService.CreateAsset(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка при создании актива", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Актив создан", http.StatusCreated)
}

func (c *AssetController) UpdateAsset(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	var payload dto.UpdateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.assetService.UpdateAsset(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Актив обновлен", http.StatusOK)
}
