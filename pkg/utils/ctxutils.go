package utils

import (
	"context"

	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetCompanyIDFromCtx(ctx context.Context) (uint64, error) {
	companyID, ok := ctx.Value(contextkeys.CompanyIDKey).(uint64)
	if !ok || companyID == 0 {
		return 0, apperrors.ErrCompanyIDNotFoundInContext
	}
	return companyID, nil
}
