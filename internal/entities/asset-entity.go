package entities

import (
	"asset-system/pkg/types"
)

// Asset — учётная единица (техника, лицензия на ПО и т.д.).
// Физически не удаляется: терминальные статусы RETIRED/DISPOSED
// переводят is_active в false, notes хранит журнал действий.
type Asset struct {
	ID        uint64 `json:"id"`
	CompanyID uint64 `json:"company_id"`
	AssetTag  string `json:"asset_tag"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	Notes     string `json:"notes"`

	types.BaseEntity
}
