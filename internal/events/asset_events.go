package events

import (
	"time"

	"github.com/google/uuid"
)

const AssetRequestExecutedEventName = "asset.request.executed"

// AssetRequestExecutedEvent публикуется ПОСЛЕ коммита транзакции
// выполнения заявки. Слушатели не могут повлиять на сам переход.
type AssetRequestExecutedEvent struct {
	EventID     uuid.UUID
	CompanyID   uint64
	RequestID   uint64
	AssetID     uint64
	RequestType string
	AssetStatus string
	OccurredAt  time.Time
}

func (e AssetRequestExecutedEvent) Name() string {
	return AssetRequestExecutedEventName
}
