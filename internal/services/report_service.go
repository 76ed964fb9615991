package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-system/internal/repositories"
	"asset-system/pkg/utils"
)

type ReportServiceInterface interface {
	ExportAssetsXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type ReportService struct {
	assetRepo repositories.AssetRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(assetRepo repositories.AssetRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{assetRepo: assetRepo, logger: logger}
}

// ExportAssetsXLSX выгружает реестр активов компании в книгу Excel.
func (s *ReportService) ExportAssetsXLSX(ctx context.Context) (*bytes.Buffer, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListForExport(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("выборка активов для отчета: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Активы"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Инв. номер", "Наименование", "Статус", "Активен", "Журнал"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, asset := range assets {
		active := "да"
		if !asset.IsActive {
			active = "нет"
		}
		values := []interface{}{asset.AssetTag, asset.Name, asset.Status, active, asset.Notes}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("запись книги Excel: %w", err)
	}

	s.logger.Info("сформирован отчет по активам",
		zap.Uint64("companyId", companyID), zap.Int("rows", len(assets)))
	return buf, nil
}
