package services

import (
	"context"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetDTO, uint64, error)
	FindAsset(ctx context.Context, id uint64) (*dto.AssetDTO, error)
	CreateAsset(ctx context.Context, data dto.CreateAssetDTO) (uint64, error)
	UpdateAsset(ctx context.Context, id uint64, data dto.UpdateAssetDTO) error
}

type AssetService struct {
	assetRepo repositories.AssetRepositoryInterface
	logger    *zap.Logger
}

func NewAssetService(assetRepo repositories.AssetRepositoryInterface, logger *zap.Logger) AssetServiceInterface {
	return &AssetService{assetRepo: assetRepo, logger: logger}
}

func (s *AssetService) GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetDTO, uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.assetRepo.GetAssets(ctx, companyID, filter)
}

func (s *AssetService) FindAsset(ctx context.Context, id uint64) (*dto.AssetDTO, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAsset(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	return &dto.AssetDTO{
		ID:        asset.ID,
		AssetTag:  asset.AssetTag,
		Name:      asset.Name,
		Status:    asset.Status,
		IsActive:  asset.IsActive,
		Notes:     asset.Notes,
		CreatedAt: asset.CreatedAt,
		UpdatedAt: asset.UpdatedAt,
	}, nil
}

func (s *AssetService) CreateAsset(ctx context.Context, data dto.CreateAssetDTO) (uint64, error) {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return s.assetRepo.CreateAsset(ctx, companyID, data)
}

func (s *AssetService) UpdateAsset(ctx context.Context, id uint64, data dto.UpdateAssetDTO) error {
	companyID, err := utils.GetCompanyIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.assetRepo.UpdateAsset(ctx, companyID, id, data)
}
