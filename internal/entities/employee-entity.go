package entities

import (
	"asset-system/pkg/types"
)

// Employee — сотрудник компании. Не у каждого сотрудника есть учетная
// запись пользователя: UserID может быть nil, такие сотрудники просто
// не получают уведомлений.
type Employee struct {
	ID        uint64  `json:"id"`
	CompanyID uint64  `json:"company_id"`
	Fio       string  `json:"fio"`
	UserID    *uint64 `json:"user_id"`

	types.BaseEntity
}
