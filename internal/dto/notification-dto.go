package dto

import "time"

type NotificationDTO struct {
	ID                uint64     `json:"id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Type              string     `json:"type"`
	Priority          string     `json:"priority"`
	RelatedEntityType string     `json:"related_entity_type"`
	RelatedEntityID   uint64     `json:"related_entity_id"`
	IsRead            bool       `json:"is_read"`
	CreatedAt         *time.Time `json:"created_at"`
}

type NotificationListDTO struct {
	Items       []NotificationDTO `json:"items"`
	UnreadCount uint64            `json:"unread_count"`
}
