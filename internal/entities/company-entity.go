package entities

import (
	"asset-system/pkg/types"
)

type Company struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`

	types.BaseEntity
}
