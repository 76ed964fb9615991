package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type AssetDTO struct {
	ID        uint64     `json:"id"`
	AssetTag  string     `json:"asset_tag"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	IsActive  bool       `json:"is_active"`
	Notes     string     `json:"notes"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateAssetDTO struct {
	AssetTag string `json:"asset_tag" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=255"`
}

type UpdateAssetDTO struct {
	Name   null.String `json:"name" validate:"omitempty,max=255"`
	Status null.String `json:"status" validate:"omitempty,oneof=AVAILABLE IN_USE MAINTENANCE"`
	Notes  null.String `json:"notes"`
}
