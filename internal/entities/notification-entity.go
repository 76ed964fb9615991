package entities

import (
	"time"

	"asset-system/pkg/types"
)

// Notification — запись в ящике уведомлений пользователя.
// Всегда привязана ровно к одной компании; related_* поля дают
// трассируемость к породившей записи.
type Notification struct {
	ID                uint64     `json:"id"`
	CompanyID         uint64     `json:"company_id"`
	UserID            uint64     `json:"user_id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Type              string     `json:"type"`
	Priority          string     `json:"priority"`
	RelatedEntityType string     `json:"related_entity_type"`
	RelatedEntityID   uint64     `json:"related_entity_id"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at"`

	types.BaseEntity
}
