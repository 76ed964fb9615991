package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, jwtSvc: jwtSvc, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли такой email.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, data.Password); err != nil {
		s.logger.Warn("неудачная попытка входа", zap.String("email", data.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(user.ID, user.CompanyID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
