package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	companyID, userID, err := c.identity(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	limit, _ := strconv.ParseUint(ctx.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseUint(ctx.QueryParam("offset"), 10, 64)

	res, totalCount, err := c.notificationService.GetNotifications(ctx.Request().Context(), companyID, userID, limit, offset)
	if err != nil {
		c.logger.Error("ошибка при получении уведомлений", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Уведомления успешно получены", http.StatusOK, totalCount)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	companyID, userID, err := c.identity(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	if err := c.notificationService.MarkRead(ctx.Request().Context(), companyID, userID, id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Уведомление прочитано", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	companyID, userID, err := c.identity(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.notificationService.MarkAllRead(ctx.Request().Context(), companyID, userID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Все уведомления прочитаны", http.StatusOK)
}

func (c *NotificationController) DeleteNotification(ctx echo.Context) error {
	companyID, userID, err := c.identity(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный id"))
	}

	if err := c.notificationService.DeleteNotification(ctx.Request().Context(), companyID, userID, id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Уведомление удалено", http.StatusOK)
}

func (c *NotificationController) identity(ctx echo.Context) (uint64, uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx.Request().Context())
	if err != nil {
		return 0, 0, err
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return 0, 0, err
	}
	return companyID, userID, nil
}
