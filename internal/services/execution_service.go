package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

// ExecutionEngineInterface — движок выполнения согласованных заявок.
// Единственная точка, которой разрешен переход APPROVED -> COMPLETED.
type ExecutionEngineInterface interface {
	Execute(ctx context.Context, companyID, requestID uint64) (*entities.AssetRequest, *entities.Asset, error)
}

type ExecutionEngine struct {
	txManager   repositories.TxManagerInterface
	requestRepo repositories.AssetRequestRepositoryInterface
	assetRepo   repositories.AssetRepositoryInterface
	logger      *zap.Logger
}

func NewExecutionEngine(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.AssetRequestRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	logger *zap.Logger,
) ExecutionEngineInterface {
	return &ExecutionEngine{
		txManager:   txManager,
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		logger:      logger,
	}
}

// Execute атомарно завершает заявку и переводит её актив в целевой статус.
// Обе записи меняются в одной транзакции: либо видны обе, либо ни одной.
//
// Заявка читается с блокировкой строки, поэтому из двух конкурентных
// вызовов по одному id выигрывает ровно один: второй дождется коммита
// первого, увидит статус COMPLETED и получит InvalidStateError.
func (e *ExecutionEngine) Execute(ctx context.Context, companyID, requestID uint64) (*entities.AssetRequest, *entities.Asset, error) {
	var (
		executedReq  *entities.AssetRequest
		updatedAsset *entities.Asset
	)

	err := e.txManager.RunInTransaction(ctx, func(q repositories.Querier) error {
		req, err := e.requestRepo.FindForUpdateInTx(ctx, q, companyID, requestID)
		if err != nil {
			return err
		}

		// Все проверки — до первой записи. Упавшая проверка не оставляет
		// частичного состояния.
		if req.Status != constants.RequestStatusApproved {
			return apperrors.NewInvalidStateError(
				"нельзя выполнить заявку #%d в статусе %s: требуется статус APPROVED", requestID, req.Status)
		}

		transition, ok := constants.TargetAssetStatus[req.RequestType]
		if !ok {
			return apperrors.NewInvalidStateError(
				"для типа заявки %s не задан целевой статус актива", req.RequestType)
		}

		completedAt := time.Now()

		if err := e.requestRepo.CompleteInTx(ctx, q, req.ID, completedAt); err != nil {
			return fmt.Errorf("завершение заявки #%d: %w", req.ID, err)
		}

		note := fmt.Sprintf("[%s] заявка #%d (%s): статус актива -> %s",
			completedAt.Format(time.RFC3339), req.ID, req.RequestType, transition.Status)

		asset, err := e.assetRepo.ApplyTransitionInTx(ctx, q, companyID, req.AssetID, transition.Status, transition.IsActive, note)
		if err != nil {
			return fmt.Errorf("перевод актива #%d в статус %s: %w", req.AssetID, transition.Status, err)
		}

		req.Status = constants.RequestStatusCompleted
		req.CompletedDate = &completedAt
		executedReq = req
		updatedAsset = asset
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	e.logger.Info("заявка выполнена",
		zap.Uint64("requestId", executedReq.ID),
		zap.Uint64("assetId", updatedAsset.ID),
		zap.String("assetStatus", updatedAsset.Status),
	)

	return executedReq, updatedAsset, nil
}
