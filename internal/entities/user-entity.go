package entities

import (
	"asset-system/pkg/types"
)

type User struct {
	ID           uint64 `json:"id"`
	CompanyID    uint64 `json:"company_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Fio          string `json:"fio"`
	IsActive     bool   `json:"is_active"`

	types.BaseEntity
}
