package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext    = fmt.Errorf("UserID не найден в контексте запроса")
	ErrCompanyIDNotFoundInContext = fmt.Errorf("CompanyID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// InvalidInputError — некорректные данные от клиента (400).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError — операция невозможна в текущем состоянии записи (409).
// Например, попытка выполнить заявку, которая не находится в статусе APPROVED.
// Такая ошибка не ретраится автоматически: клиент должен перечитать запись.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

func NewInvalidStateError(format string, args ...interface{}) error {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}
