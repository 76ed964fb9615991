package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	"asset-system/pkg/utils"
)

type fakeNotificationRepo struct {
	created []entities.Notification
	nextID  uint64

	// failForUser имитирует сбой записи для конкретного получателя.
	failForUser uint64
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n entities.Notification) (uint64, error) {
	if r.failForUser != 0 && n.UserID == r.failForUser {
		return 0, errors.New("insert failed")
	}
	r.nextID++
	n.ID = r.nextID
	r.created = append(r.created, n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) GetNotifications(ctx context.Context, companyID, userID uint64, limit, offset uint64) ([]dto.NotificationDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, companyID, userID uint64) (uint64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, companyID, userID, id uint64) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, companyID, userID uint64) error {
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(ctx context.Context, companyID, userID, id uint64) error {
	return nil
}

type fakeCacheRepo struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.values[key], nil
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.values[key] = "sent"
	return nil
}

func (r *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func loanDueEvent(recipients []*uint64, suppress bool) NotificationEvent {
	return NotificationEvent{
		Type:              constants.NotificationTypeLoanDueToday,
		Title:             "Сегодня срок возврата актива",
		Message:           "Актив #10 должен быть возвращен сегодня.",
		Priority:          constants.NotificationPriorityMedium,
		CompanyID:         1,
		RelatedEntityType: constants.RelatedEntityLoan,
		RelatedEntityID:   7,
		Recipients:        recipients,
		Suppress:          suppress,
	}
}

func TestNotificationService_Notify_SkipsNilAndDuplicateRecipients(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, newFakeCacheRepo(), time.Hour, zap.NewNop())

	recipients := []*uint64{
		utils.ToPtr(uint64(5)),
		nil,
		utils.ToPtr(uint64(0)),
		utils.ToPtr(uint64(5)), // дубликат
		utils.ToPtr(uint64(6)),
	}

	created, err := svc.Notify(context.Background(), loanDueEvent(recipients, false))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.Len(t, repo.created, 2)
	assert.Equal(t, uint64(5), repo.created[0].UserID)
	assert.Equal(t, uint64(6), repo.created[1].UserID)
}

func TestNotificationService_Notify_SuppressionWindow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	cache := newFakeCacheRepo()
	svc := NewNotificationService(repo, cache, time.Hour, zap.NewNop())

	event := loanDueEvent([]*uint64{utils.ToPtr(uint64(5))}, true)

	created, err := svc.Notify(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Повторное срабатывание того же условия в окне — молча подавляется.
	created, err = svc.Notify(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.created, 1)
}

func TestNotificationService_Notify_SuppressionKeyIsScoped(t *testing.T) {
	repo := &fakeNotificationRepo{}
	cache := newFakeCacheRepo()
	svc := NewNotificationService(repo, cache, time.Hour, zap.NewNop())

	first := loanDueEvent([]*uint64{utils.ToPtr(uint64(5))}, true)
	_, err := svc.Notify(context.Background(), first)
	require.NoError(t, err)

	// Другая сущность — другой ключ, подавление не срабатывает.
	other := first
	other.RelatedEntityID = 8
	created, err := svc.Notify(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestNotificationService_Notify_CacheFailureIsOpen(t *testing.T) {
	repo := &fakeNotificationRepo{}
	cache := newFakeCacheRepo()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewNotificationService(repo, cache, time.Hour, zap.NewNop())

	// Недоступный кеш не блокирует рассылку.
	created, err := svc.Notify(context.Background(), loanDueEvent([]*uint64{utils.ToPtr(uint64(5))}, true))
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestNotificationService_Notify_BestEffortFanOut(t *testing.T) {
	repo := &fakeNotificationRepo{failForUser: 5}
	svc := NewNotificationService(repo, newFakeCacheRepo(), time.Hour, zap.NewNop())

	recipients := []*uint64{
		utils.ToPtr(uint64(5)),
		utils.ToPtr(uint64(6)),
		utils.ToPtr(uint64(7)),
	}

	// Сбой по одному получателю не мешает остальным.
	created, err := svc.Notify(context.Background(), loanDueEvent(recipients, false))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestNotificationService_Notify_NoRecipientsNoSuppressKey(t *testing.T) {
	repo := &fakeNotificationRepo{}
	cache := newFakeCacheRepo()
	svc := NewNotificationService(repo, cache, time.Hour, zap.NewNop())

	created, err := svc.Notify(context.Background(), loanDueEvent([]*uint64{nil}, true))
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	// Ключ подавления не ставится, если никто ничего не получил:
	// следующий проход попробует снова.
	assert.Empty(t, cache.values)
}
