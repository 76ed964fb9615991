package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/events"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type AssetRequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.AssetRequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.AssetRequestDTO, error)
	CreateRequest(ctx context.Context, data dto.CreateAssetRequestDTO) (uint64, error)
	ApproveRequest(ctx context.Context, id uint64) error
	RejectRequest(ctx context.Context, id uint64) error
	ExecuteRequest(ctx context.Context, id uint64) (*dto.ExecutedRequestDTO, error)
}

type AssetRequestService struct {
	engine              ExecutionEngineInterface
	requestRepo         repositories.AssetRequestRepositoryInterface
	assetRepo           repositories.AssetRepositoryInterface
	notificationService NotificationEmitterInterface
	bus                 *eventbus.Bus
	logger              *zap.Logger
}

func NewAssetRequestService(
	engine ExecutionEngineInterface,
	requestRepo repositories.AssetRequestRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	notificationService NotificationEmitterInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) AssetRequestServiceInterface {
	return &AssetRequestService{
		engine:              engine,
		requestRepo:         requestRepo,
		assetRepo:           assetRepo,
		notificationService: notificationService,
		bus:                 bus,
		logger:              logger,
	}
}

func (s *AssetRequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.AssetRequestDTO, uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.requestRepo.GetRequests(ctx, companyID, filter)
}

func (s *AssetRequestService) FindRequest(ctx context.Context, id uint64) (*dto.AssetRequestDTO, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.FindRequest(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	result := repositories.AssetRequestToDTO(req)
	return &result, nil
}

func (s *AssetRequestService) CreateRequest(ctx context.Context, data dto.CreateAssetRequestDTO) (uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	requesterID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	// Актив должен существовать в той же компании. Для разрушающих типов
	// заявок не даем ссылаться на уже списанный актив.
	asset, err := s.assetRepo.FindAsset(ctx, companyID, data.AssetID)
	if err != nil {
		return 0, err
	}
	if constants.IsTerminalAssetStatus(asset.Status) {
		return 0, apperrors.NewInvalidStateError(
			"актив %s уже в терминальном статусе %s", asset.AssetTag, asset.Status)
	}

	return s.requestRepo.CreateRequest(ctx, companyID, requesterID, data)
}

func (s *AssetRequestService) ApproveRequest(ctx context.Context, id uint64) error {
	return s.setStatusFromPending(ctx, id, constants.RequestStatusApproved)
}

func (s *AssetRequestService) RejectRequest(ctx context.Context, id uint64) error {
	return s.setStatusFromPending(ctx, id, constants.RequestStatusRejected)
}

func (s *AssetRequestService) setStatusFromPending(ctx context.Context, id uint64, newStatus string) error {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return err
	}
	approverID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	return s.requestRepo.SetStatusFromPending(ctx, companyID, id, newStatus, approverID)
}

// ExecuteRequest выполняет согласованную заявку через движок и после
// успешного коммита рассылает уведомления. Сбой рассылки не откатывает
// бизнес-переход: он уже зафиксирован в БД.
func (s *AssetRequestService) ExecuteRequest(ctx context.Context, id uint64) (*dto.ExecutedRequestDTO, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	req, asset, err := s.engine.Execute(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.notificationService.Notify(ctx, NotificationEvent{
		Type:              constants.NotificationTypeRequestExecuted,
		Title:             "Заявка выполнена",
		Message:           fmt.Sprintf("Заявка #%d (%s) выполнена: актив %s переведен в статус %s.", req.ID, req.RequestType, asset.AssetTag, asset.Status),
		Priority:          constants.NotificationPriorityMedium,
		CompanyID:         companyID,
		RelatedEntityType: constants.RelatedEntityRequest,
		RelatedEntityID:   req.ID,
		Recipients:        []*uint64{utils.ToPtr(req.RequesterID), req.ApproverID},
	}); err != nil {
		s.logger.Warn("не удалось разослать уведомления о выполнении заявки",
			zap.Uint64("requestId", req.ID), zap.Error(err))
	}

	s.bus.Publish(ctx, events.AssetRequestExecutedEvent{
		EventID:     uuid.New(),
		CompanyID:   companyID,
		RequestID:   req.ID,
		AssetID:     asset.ID,
		RequestType: req.RequestType,
		AssetStatus: asset.Status,
		OccurredAt:  time.Now(),
	})

	requestDTO := repositories.AssetRequestToDTO(req)
	return &dto.ExecutedRequestDTO{
		Request: requestDTO,
		Asset: dto.AssetDTO{
			ID:        asset.ID,
			AssetTag:  asset.AssetTag,
			Name:      asset.Name,
			Status:    asset.Status,
			IsActive:  asset.IsActive,
			Notes:     asset.Notes,
			CreatedAt: asset.CreatedAt,
			UpdatedAt: asset.UpdatedAt,
		},
	}, nil
}
