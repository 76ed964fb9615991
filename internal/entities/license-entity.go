package entities

import (
	"time"

	"asset-system/pkg/types"
)

// License — лицензия на ПО с датой истечения.
type License struct {
	ID                    uint64    `json:"id"`
	CompanyID             uint64    `json:"company_id"`
	Name                  string    `json:"name"`
	AssetID               *uint64   `json:"asset_id"`
	ExpiryDate            time.Time `json:"expiry_date"`
	ResponsibleEmployeeID *uint64   `json:"responsible_employee_id"`

	types.BaseEntity
}
