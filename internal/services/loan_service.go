package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type LoanServiceInterface interface {
	GetLoans(ctx context.Context, filter types.Filter) ([]dto.LoanDTO, uint64, error)
	CreateLoan(ctx context.Context, data dto.CreateLoanDTO) (uint64, error)
	ReturnLoan(ctx context.Context, id uint64) (*dto.LoanDTO, error)
}

type LoanService struct {
	loanRepo  repositories.LoanRepositoryInterface
	assetRepo repositories.AssetRepositoryInterface
	logger    *zap.Logger
}

func NewLoanService(
	loanRepo repositories.LoanRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	logger *zap.Logger,
) LoanServiceInterface {
	return &LoanService{loanRepo: loanRepo, assetRepo: assetRepo, logger: logger}
}

func (s *LoanService) GetLoans(ctx context.Context, filter types.Filter) ([]dto.LoanDTO, uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.loanRepo.GetLoans(ctx, companyID, filter)
}

func (s *LoanService) CreateLoan(ctx context.Context, data dto.CreateLoanDTO) (uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	requestedByID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	asset, err := s.assetRepo.FindAsset(ctx, companyID, data.AssetID)
	if err != nil {
		return 0, err
	}
	if asset.Status != constants.AssetStatusAvailable {
		return 0, apperrors.NewInvalidStateError(
			"актив %s нельзя выдать: статус %s", asset.AssetTag, asset.Status)
	}

	newID, err := s.loanRepo.CreateLoan(ctx, companyID, requestedByID, data)
	if err != nil {
		return 0, err
	}

	note := fmt.Sprintf("[%s] выдача #%d: актив выдан сотруднику #%d",
		time.Now().Format(time.RFC3339), newID, data.BorrowerEmployeeID)
	if _, err := s.assetRepo.ApplyTransition(ctx, companyID, data.AssetID, constants.AssetStatusInUse, true, note); err != nil {
		s.logger.Error("не удалось перевести актив в IN_USE после выдачи",
			zap.Uint64("loanId", newID), zap.Error(err))
	}

	return newID, nil
}

// ReturnLoan закрывает выдачу и возвращает актив в пул доступных.
func (s *LoanService) ReturnLoan(ctx context.Context, id uint64) (*dto.LoanDTO, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.ReturnLoan(ctx, companyID, id, time.Now())
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("[%s] выдача #%d: актив возвращен",
		time.Now().Format(time.RFC3339), loan.ID)
	if _, err := s.assetRepo.ApplyTransition(ctx, companyID, loan.AssetID, constants.AssetStatusAvailable, true, note); err != nil {
		s.logger.Error("не удалось вернуть актив в AVAILABLE после возврата",
			zap.Uint64("loanId", loan.ID), zap.Error(err))
	}

	result := repositories.LoanToDTO(loan)
	return &result, nil
}
