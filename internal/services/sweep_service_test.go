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
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type fakeLoanRepo struct {
	loans map[uint64]entities.Loan

	// markOverdueErr имитирует сбой перехода по конкретной выдаче.
	markOverdueErr map[uint64]error
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{
		loans:          make(map[uint64]entities.Loan),
		markOverdueErr: make(map[uint64]error),
	}
}

func (r *fakeLoanRepo) GetLoans(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.LoanDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeLoanRepo) FindLoan(ctx context.Context, companyID uint64, id uint64) (*entities.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &loan, nil
}

func (r *fakeLoanRepo) CreateLoan(ctx context.Context, companyID uint64, requestedByID uint64, data dto.CreateLoanDTO) (uint64, error) {
	return 0, nil
}

func (r *fakeLoanRepo) ReturnLoan(ctx context.Context, companyID uint64, id uint64, returnedAt time.Time) (*entities.Loan, error) {
	return nil, nil
}

func (r *fakeLoanRepo) ListActiveReturnBefore(ctx context.Context, before time.Time) ([]entities.Loan, error) {
	var out []entities.Loan
	for _, loan := range r.loans {
		if loan.Status == constants.LoanStatusActive && loan.ExpectedReturnDate.Before(before) {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListActiveReturnBetween(ctx context.Context, from, to time.Time) ([]entities.Loan, error) {
	var out []entities.Loan
	for _, loan := range r.loans {
		if loan.Status == constants.LoanStatusActive &&
			!loan.ExpectedReturnDate.Before(from) && loan.ExpectedReturnDate.Before(to) {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) MarkOverdue(ctx context.Context, id uint64) error {
	if err := r.markOverdueErr[id]; err != nil {
		return err
	}
	loan := r.loans[id]
	loan.Status = constants.LoanStatusOverdue
	r.loans[id] = loan
	return nil
}

type fakeLicenseRepo struct {
	licenses []entities.License
}

func (r *fakeLicenseRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]entities.License, error) {
	var out []entities.License
	for _, l := range r.licenses {
		if !l.ExpiryDate.Before(from) && l.ExpiryDate.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[uint64]entities.Employee
}

func (r *fakeEmployeeRepo) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

type recordingEmitter struct {
	events []NotificationEvent
}

func (e *recordingEmitter) Notify(ctx context.Context, event NotificationEvent) (int, error) {
	e.events = append(e.events, event)
	return len(event.Recipients), nil
}

func (e *recordingEmitter) byType(notifType string) []NotificationEvent {
	var out []NotificationEvent
	for _, ev := range e.events {
		if ev.Type == notifType {
			out = append(out, ev)
		}
	}
	return out
}

func activeLoan(id uint64, returnDate time.Time) entities.Loan {
	return entities.Loan{
		ID: id, CompanyID: 1, AssetID: 10,
		BorrowerEmployeeID: 100, ResponsibleEmployeeID: 101,
		RequestedByID: 5, ApprovedByID: utils.ToPtr(uint64(6)),
		Status: constants.LoanStatusActive, ExpectedReturnDate: returnDate,
	}
}

func newSweepFixture() (*fakeLoanRepo, *fakeLicenseRepo, *recordingEmitter, SweepServiceInterface) {
	loanRepo := newFakeLoanRepo()
	licenseRepo := &fakeLicenseRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[uint64]entities.Employee{
		100: {ID: 100, CompanyID: 1, Fio: "Заемщик", UserID: utils.ToPtr(uint64(50))},
		101: {ID: 101, CompanyID: 1, Fio: "Ответственный", UserID: nil}, // без учетки
	}}
	emitter := &recordingEmitter{}

	svc := NewSweepService(loanRepo, licenseRepo, employeeRepo, emitter, 3, 30, zap.NewNop())
	return loanRepo, licenseRepo, emitter, svc
}

func TestSweepService_SweepLoans_BucketsAreExclusive(t *testing.T) {
	loanRepo, _, emitter, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	startToday := utils.StartOfDay(now)

	loanRepo.loans[1] = activeLoan(1, startToday.AddDate(0, 0, -2)) // просрочена
	loanRepo.loans[2] = activeLoan(2, now.Add(time.Hour))           // возврат сегодня
	loanRepo.loans[3] = activeLoan(3, startToday.AddDate(0, 0, 2))  // скоро
	loanRepo.loans[4] = activeLoan(4, startToday.AddDate(0, 0, 10)) // вне горизонта

	result, err := svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Overdue)
	assert.Equal(t, 1, result.DueToday)
	assert.Equal(t, 1, result.DueSoon)

	// Ровно одно уведомление каждого типа: корзины не пересекаются.
	assert.Len(t, emitter.byType(constants.NotificationTypeLoanOverdue), 1)
	assert.Len(t, emitter.byType(constants.NotificationTypeLoanDueToday), 1)
	assert.Len(t, emitter.byType(constants.NotificationTypeLoanDueSoon), 1)
	assert.Len(t, emitter.events, 3)
}

func TestSweepService_SweepLoans_DueSoonBoundary(t *testing.T) {
	loanRepo, _, _, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	startToday := utils.StartOfDay(now)

	// dueSoonDays = 3: последний попадающий день — сегодня + 3.
	loanRepo.loans[1] = activeLoan(1, startToday.AddDate(0, 0, 3))
	loanRepo.loans[2] = activeLoan(2, startToday.AddDate(0, 0, 4))

	result, err := svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DueSoon)
}

func TestSweepService_SweepLoans_OverdueTransitionsBeforeNotify(t *testing.T) {
	loanRepo, _, emitter, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	loanRepo.loans[1] = activeLoan(1, utils.StartOfDay(now).AddDate(0, 0, -1))

	result, err := svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Overdue)
	assert.Equal(t, constants.LoanStatusOverdue, loanRepo.loans[1].Status)

	events := emitter.byType(constants.NotificationTypeLoanOverdue)
	require.Len(t, events, 1)
	assert.Equal(t, constants.NotificationPriorityHigh, events[0].Priority)
	assert.False(t, events[0].Suppress, "просрочка уведомляется при каждом проходе")

	// Получатели: заемщик (учетка 50), ответственный (nil — без учетки),
	// оформивший (5) и согласовавший (6).
	require.Len(t, events[0].Recipients, 4)
	assert.Equal(t, uint64(50), *events[0].Recipients[0])
	assert.Nil(t, events[0].Recipients[1])
	assert.Equal(t, uint64(5), *events[0].Recipients[2])
	assert.Equal(t, uint64(6), *events[0].Recipients[3])

	// Повторный проход: выдача уже OVERDUE, среди ACTIVE её нет.
	result, err = svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Overdue)
}

func TestSweepService_SweepLoans_DueTodayIsSuppressed(t *testing.T) {
	loanRepo, _, emitter, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	loanRepo.loans[1] = activeLoan(1, now.Add(2*time.Hour))

	_, err := svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)

	events := emitter.byType(constants.NotificationTypeLoanDueToday)
	require.Len(t, events, 1)
	assert.True(t, events[0].Suppress)
	assert.Equal(t, constants.NotificationPriorityMedium, events[0].Priority)
}

func TestSweepService_SweepLoans_FailureIsIsolated(t *testing.T) {
	loanRepo, _, emitter, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	overdueDate := utils.StartOfDay(now).AddDate(0, 0, -1)
	loanRepo.loans[1] = activeLoan(1, overdueDate)
	loanRepo.loans[2] = activeLoan(2, overdueDate)
	loanRepo.markOverdueErr[1] = errors.New("deadlock")

	result, err := svc.SweepLoans(context.Background(), now)
	require.NoError(t, err)

	// Сбой по одной выдаче не прерывает проход и не считается обработанным.
	assert.Equal(t, 1, result.Overdue)
	assert.Len(t, emitter.byType(constants.NotificationTypeLoanOverdue), 1)
	assert.Equal(t, constants.LoanStatusOverdue, loanRepo.loans[2].Status)
	assert.Equal(t, constants.LoanStatusActive, loanRepo.loans[1].Status)
}

func TestSweepService_SweepLicenses_Window(t *testing.T) {
	_, licenseRepo, emitter, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	startToday := utils.StartOfDay(now)

	licenseRepo.licenses = []entities.License{
		{ID: 1, CompanyID: 1, Name: "Внутри окна", ExpiryDate: startToday.AddDate(0, 0, 10),
			ResponsibleEmployeeID: utils.ToPtr(uint64(100))},
		{ID: 2, CompanyID: 1, Name: "Граница окна", ExpiryDate: startToday.AddDate(0, 0, 30)},
		{ID: 3, CompanyID: 1, Name: "За окном", ExpiryDate: startToday.AddDate(0, 0, 45)},
		{ID: 4, CompanyID: 1, Name: "Уже истекла", ExpiryDate: startToday.AddDate(0, 0, -1)},
	}

	count, err := svc.SweepLicenses(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	events := emitter.byType(constants.NotificationTypeLicenseExpiring)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.True(t, ev.Suppress)
		assert.Equal(t, constants.NotificationPriorityMedium, ev.Priority)
		assert.Equal(t, constants.RelatedEntityLicense, ev.RelatedEntityType)
	}

	// У первой лицензии есть ответственный с учеткой — он и получатель.
	require.Len(t, events[0].Recipients, 1)
	assert.Equal(t, uint64(50), *events[0].Recipients[0])
	// У второй ответственного нет — получателей нет.
	assert.Empty(t, events[1].Recipients)
}

func TestSweepService_RunAll_CombinesResults(t *testing.T) {
	loanRepo, licenseRepo, _, svc := newSweepFixture()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	startToday := utils.StartOfDay(now)

	loanRepo.loans[1] = activeLoan(1, startToday.AddDate(0, 0, -1))
	licenseRepo.licenses = []entities.License{
		{ID: 1, CompanyID: 1, Name: "Лицензия", ExpiryDate: startToday.AddDate(0, 0, 5)},
	}

	result, err := svc.RunAll(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Overdue)
	assert.Equal(t, 1, result.ExpiringLicenses)
}
