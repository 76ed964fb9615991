package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type AssetRequestDTO struct {
	ID            uint64      `json:"id"`
	RequestType   string      `json:"request_type"`
	Status        string      `json:"status"`
	RequesterID   uint64      `json:"requester_id"`
	ApproverID    null.Uint64 `json:"approver_id"`
	AssetID       uint64      `json:"asset_id"`
	Reason        string      `json:"reason"`
	CompletedDate null.Time   `json:"completed_date"`
	CreatedAt     *time.Time  `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at"`
}

type CreateAssetRequestDTO struct {
	RequestType string `json:"request_type" validate:"required,oneof=ASSET_REQUEST MAINTENANCE_REQUEST ASSET_TRANSFER ASSET_DISPOSAL ASSET_BREAKDOWN"`
	AssetID     uint64 `json:"asset_id" validate:"required"`
	Reason      string `json:"reason" validate:"max=2048"`
}

// ExecutedRequestDTO — результат выполнения заявки: пара "заявка + актив"
// после атомарного перехода.
type ExecutedRequestDTO struct {
	Request AssetRequestDTO `json:"request"`
	Asset   AssetDTO        `json:"asset"`
}
