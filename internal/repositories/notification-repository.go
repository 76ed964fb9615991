package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

type NotificationRepositoryInterface interface {
	CreateNotification(ctx context.Context, n entities.Notification) (uint64, error)
	GetNotifications(ctx context.Context, companyID, userID uint64, limit, offset uint64) ([]dto.NotificationDTO, uint64, error)
	CountUnread(ctx context.Context, companyID, userID uint64) (uint64, error)
	MarkRead(ctx context.Context, companyID, userID, id uint64) error
	MarkAllRead(ctx context.Context, companyID, userID uint64) error
	DeleteNotification(ctx context.Context, companyID, userID, id uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n entities.Notification) (uint64, error) {
	query := `
		INSERT INTO notifications (company_id, user_id, title, message, type, priority, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		n.CompanyID, n.UserID, n.Title, n.Message, n.Type, n.Priority, n.RelatedEntityType, n.RelatedEntityID,
	).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *NotificationRepository) GetNotifications(ctx context.Context, companyID, userID uint64, limit, offset uint64) ([]dto.NotificationDTO, uint64, error) {
	query := `
		SELECT id, title, message, type, priority, related_entity_type, related_entity_id, is_read, created_at
		FROM notifications
		WHERE company_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.storage.Query(ctx, query, companyID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []dto.NotificationDTO
	for rows.Next() {
		var n dto.NotificationDTO
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.RelatedEntityType, &n.RelatedEntityID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	err = r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE company_id = $1 AND user_id = $2`,
		companyID, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, companyID, userID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE company_id = $1 AND user_id = $2 AND is_read = FALSE`,
		companyID, userID,
	).Scan(&count)
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, companyID, userID, id uint64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = $1
		WHERE id = $2 AND company_id = $3 AND user_id = $4
	`
	tag, err := r.storage.Exec(ctx, query, time.Now(), id, companyID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, companyID, userID uint64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = $1
		WHERE company_id = $2 AND user_id = $3 AND is_read = FALSE
	`
	_, err := r.storage.Exec(ctx, query, time.Now(), companyID, userID)
	return err
}

func (r *NotificationRepository) DeleteNotification(ctx context.Context, companyID, userID, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND company_id = $2 AND user_id = $3`,
		id, companyID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
