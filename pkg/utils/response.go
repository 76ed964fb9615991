package utils

import (
	"errors"
	"net/http"

	apperrors "asset-system/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

// ErrorList сопоставляет известные ошибки HTTP-статусам.
var ErrorList = map[error]int{
	apperrors.ErrNotFound:                  http.StatusNotFound,
	apperrors.ErrBadRequest:                http.StatusBadRequest,
	apperrors.ErrInvalidCredentials:        http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:           http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:         http.StatusUnauthorized,
	apperrors.ErrInvalidToken:              http.StatusUnauthorized,
	apperrors.ErrTokenExpired:              http.StatusUnauthorized,
	apperrors.ErrTokenNotYetValid:          http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess:          http.StatusUnauthorized,
	apperrors.ErrUnauthorized:              http.StatusUnauthorized,
	apperrors.ErrForbidden:                 http.StatusForbidden,
	apperrors.ErrUserIDNotFoundInContext:   http.StatusUnauthorized,
	apperrors.ErrCompanyIDNotFoundInContext: http.StatusUnauthorized,
}

// ErrorResponse переводит ошибку бизнес-слоя в HTTP-ответ.
// Клиент должен отличать "не найдено" от "неверное состояние" и от
// "хранилище недоступно", поэтому статусы здесь разные.
func ErrorResponse(ctx echo.Context, err error) error {
	message := err.Error()
	code := http.StatusInternalServerError

	for known, statusCode := range ErrorList {
		if errors.Is(err, known) {
			message = known.Error()
			code = statusCode
			break
		}
	}

	var invalidState *apperrors.InvalidStateError
	if errors.As(err, &invalidState) {
		message = invalidState.Message
		code = http.StatusConflict
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		message = invalidInput.Message
		code = http.StatusBadRequest
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		code = httpErr.Code
	}

	// Ошибки PostgreSQL наружу не раскрываем.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		message = "внутренняя ошибка хранилища"
		code = http.StatusInternalServerError
	}

	response := &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}
	return ctx.JSON(code, response)
}
