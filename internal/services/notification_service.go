package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
)

// NotificationEvent — описание бизнес-события для рассылки уведомлений.
// Recipients — заранее разрешенный список идентификаторов пользователей;
// nil-элементы (сотрудник без учетной записи) молча пропускаются.
type NotificationEvent struct {
	Type              string
	Title             string
	Message           string
	Priority          string
	CompanyID         uint64
	RelatedEntityType string
	RelatedEntityID   uint64
	Recipients        []*uint64

	// Suppress включает окно подавления повторов: периодическая проверка,
	// обнаружившая то же условие повторно, не должна спамить.
	Suppress bool
}

// NotificationEmitterInterface — запись уведомлений по событию.
type NotificationEmitterInterface interface {
	Notify(ctx context.Context, event NotificationEvent) (int, error)
}

type NotificationServiceInterface interface {
	NotificationEmitterInterface
	GetNotifications(ctx context.Context, companyID, userID uint64, limit, offset uint64) (*dto.NotificationListDTO, uint64, error)
	MarkRead(ctx context.Context, companyID, userID, id uint64) error
	MarkAllRead(ctx context.Context, companyID, userID uint64) error
	DeleteNotification(ctx context.Context, companyID, userID, id uint64) error
}

type NotificationService struct {
	notificationRepo  repositories.NotificationRepositoryInterface
	cacheRepo         repositories.CacheRepositoryInterface
	suppressionWindow time.Duration
	logger            *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	suppressionWindow time.Duration,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo:  notificationRepo,
		cacheRepo:         cacheRepo,
		suppressionWindow: suppressionWindow,
		logger:            logger,
	}
}

// Notify создает по одному уведомлению на каждого ненулевого получателя.
// Рассылка best-effort: ошибка записи одного уведомления логируется и не
// мешает остальным. Возвращает количество созданных записей.
func (s *NotificationService) Notify(ctx context.Context, event NotificationEvent) (int, error) {
	suppressKey := fmt.Sprintf(constants.CacheKeyNotificationSuppress,
		event.CompanyID, event.RelatedEntityType, event.RelatedEntityID, event.Type)

	if event.Suppress {
		// Недоступность кеша трактуем как "не подавлено": лишнее
		// уведомление лучше потерянного.
		if val, err := s.cacheRepo.Get(ctx, suppressKey); err == nil && val != "" {
			s.logger.Debug("уведомление подавлено окном повторов",
				zap.String("key", suppressKey))
			return 0, nil
		}
	}

	created := 0
	seen := make(map[uint64]bool)
	for _, recipient := range event.Recipients {
		if recipient == nil || *recipient == 0 {
			continue
		}
		if seen[*recipient] {
			continue
		}
		seen[*recipient] = true

		notification := entities.Notification{
			CompanyID:         event.CompanyID,
			UserID:            *recipient,
			Title:             event.Title,
			Message:           event.Message,
			Type:              event.Type,
			Priority:          event.Priority,
			RelatedEntityType: event.RelatedEntityType,
			RelatedEntityID:   event.RelatedEntityID,
		}

		if _, err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
			s.logger.Warn("не удалось записать уведомление",
				zap.Uint64("userId", *recipient),
				zap.String("type", event.Type),
				zap.Error(err),
			)
			continue
		}
		created++
	}

	if event.Suppress && created > 0 {
		if err := s.cacheRepo.Set(ctx, suppressKey, "sent", s.suppressionWindow); err != nil {
			s.logger.Warn("не удалось установить ключ подавления", zap.Error(err))
		}
	}

	return created, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, companyID, userID uint64, limit, offset uint64) (*dto.NotificationListDTO, uint64, error) {
	if limit == 0 {
		limit = 20
	}

	items, total, err := s.notificationRepo.GetNotifications(ctx, companyID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, companyID, userID)
	if err != nil {
		return nil, 0, err
	}

	return &dto.NotificationListDTO{
		Items:       items,
		UnreadCount: unread,
	}, total, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, companyID, userID, id uint64) error {
	return s.notificationRepo.MarkRead(ctx, companyID, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, companyID, userID uint64) error {
	return s.notificationRepo.MarkAllRead(ctx, companyID, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, companyID, userID, id uint64) error {
	return s.notificationRepo.DeleteNotification(ctx, companyID, userID, id)
}
