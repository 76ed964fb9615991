package entities

import (
	"time"

	"asset-system/pkg/types"
)

// AssetRequest — согласуемая заявка на действие с активом.
// Переходы статусов монотонны: PENDING -> APPROVED -> COMPLETED
// либо PENDING -> REJECTED. CompletedDate заполнена тогда и только
// тогда, когда статус COMPLETED.
type AssetRequest struct {
	ID            uint64     `json:"id"`
	CompanyID     uint64     `json:"company_id"`
	RequestType   string     `json:"request_type"`
	Status        string     `json:"status"`
	RequesterID   uint64     `json:"requester_id"`
	ApproverID    *uint64    `json:"approver_id"`
	AssetID       uint64     `json:"asset_id"`
	Reason        string     `json:"reason"`
	CompletedDate *time.Time `json:"completed_date"`

	types.BaseEntity
}
