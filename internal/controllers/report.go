package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportAssets(ctx echo.Context) error {
	buf, err := c.reportService.ExportAssetsXLSX(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ошибка при формировании отчета по активам", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	filename := fmt.Sprintf("assets_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))

	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
