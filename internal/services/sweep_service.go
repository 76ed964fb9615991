package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	"asset-system/pkg/utils"
)

// SweepResult — количество записей в каждой корзине одного прохода.
type SweepResult struct {
	Overdue          int `json:"overdue"`
	DueToday         int `json:"due_today"`
	DueSoon          int `json:"due_soon"`
	ExpiringLicenses int `json:"expiring_licenses"`
}

type SweepServiceInterface interface {
	SweepLoans(ctx context.Context, now time.Time) (SweepResult, error)
	SweepLicenses(ctx context.Context, now time.Time) (int, error)
	RunAll(ctx context.Context, now time.Time) (SweepResult, error)
}

type SweepService struct {
	loanRepo          repositories.LoanRepositoryInterface
	licenseRepo       repositories.LicenseRepositoryInterface
	employeeRepo      repositories.EmployeeRepositoryInterface
	emitter           NotificationEmitterInterface
	dueSoonDays       int
	licenseWindowDays int
	logger            *zap.Logger
}

func NewSweepService(
	loanRepo repositories.LoanRepositoryInterface,
	licenseRepo repositories.LicenseRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	emitter NotificationEmitterInterface,
	dueSoonDays int,
	licenseWindowDays int,
	logger *zap.Logger,
) SweepServiceInterface {
	return &SweepService{
		loanRepo:          loanRepo,
		licenseRepo:       licenseRepo,
		employeeRepo:      employeeRepo,
		emitter:           emitter,
		dueSoonDays:       dueSoonDays,
		licenseWindowDays: licenseWindowDays,
		logger:            logger,
	}
}

// SweepLoans классифицирует активные выдачи по дате возврата на три
// непересекающиеся корзины полуинтервалами:
//
//	просрочено:      expected_return_date < [начало сегодня)
//	возврат сегодня: [начало сегодня, начало завтра)
//	возврат скоро:   [начало завтра, начало сегодня + dueSoonDays + 1 день)
//
// Каждая выдача попадает ровно в одну корзину. Ошибка по одной записи
// логируется и не прерывает проход.
func (s *SweepService) SweepLoans(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	startToday := utils.StartOfDay(now)
	startTomorrow := utils.StartOfNextDay(now)
	dueSoonEnd := utils.AddDays(startToday, s.dueSoonDays+1)

	overdue, err := s.loanRepo.ListActiveReturnBefore(ctx, startToday)
	if err != nil {
		return result, fmt.Errorf("выборка просроченных выдач: %w", err)
	}
	for i := range overdue {
		loan := &overdue[i]
		// Сначала переход статуса, потом уведомление: повторный проход
		// уже не увидит эту выдачу среди ACTIVE.
		if err := s.loanRepo.MarkOverdue(ctx, loan.ID); err != nil {
			s.logger.Error("не удалось пометить выдачу просроченной",
				zap.Uint64("loanId", loan.ID), zap.Error(err))
			continue
		}
		result.Overdue++

		s.notifyLoan(ctx, loan, constants.NotificationTypeLoanOverdue, constants.NotificationPriorityHigh,
			"Выдача актива просрочена",
			fmt.Sprintf("Актив #%d не возвращен: ожидался %s.", loan.AssetID, loan.ExpectedReturnDate.Format("02.01.2006")),
			false)
	}

	dueToday, err := s.loanRepo.ListActiveReturnBetween(ctx, startToday, startTomorrow)
	if err != nil {
		return result, fmt.Errorf("выборка выдач с возвратом сегодня: %w", err)
	}
	for i := range dueToday {
		loan := &dueToday[i]
		result.DueToday++
		s.notifyLoan(ctx, loan, constants.NotificationTypeLoanDueToday, constants.NotificationPriorityMedium,
			"Сегодня срок возврата актива",
			fmt.Sprintf("Актив #%d должен быть возвращен сегодня.", loan.AssetID),
			true)
	}

	dueSoon, err := s.loanRepo.ListActiveReturnBetween(ctx, startTomorrow, dueSoonEnd)
	if err != nil {
		return result, fmt.Errorf("выборка выдач с близким возвратом: %w", err)
	}
	for i := range dueSoon {
		loan := &dueSoon[i]
		result.DueSoon++
		s.notifyLoan(ctx, loan, constants.NotificationTypeLoanDueSoon, constants.NotificationPriorityLow,
			"Приближается срок возврата актива",
			fmt.Sprintf("Актив #%d нужно вернуть до %s.", loan.AssetID, loan.ExpectedReturnDate.Format("02.01.2006")),
			true)
	}

	return result, nil
}

// SweepLicenses находит лицензии, истекающие в окне [сегодня, сегодня + окно].
func (s *SweepService) SweepLicenses(ctx context.Context, now time.Time) (int, error) {
	startToday := utils.StartOfDay(now)
	windowEnd := utils.AddDays(startToday, s.licenseWindowDays+1)

	licenses, err := s.licenseRepo.ListExpiringBetween(ctx, startToday, windowEnd)
	if err != nil {
		return 0, fmt.Errorf("выборка истекающих лицензий: %w", err)
	}

	for i := range licenses {
		license := &licenses[i]

		var recipients []*uint64
		if license.ResponsibleEmployeeID != nil {
			recipients = append(recipients, s.resolveEmployeeUser(ctx, *license.ResponsibleEmployeeID))
		}

		_, err := s.emitter.Notify(ctx, NotificationEvent{
			Type:              constants.NotificationTypeLicenseExpiring,
			Title:             "Истекает срок лицензии",
			Message:           fmt.Sprintf("Лицензия «%s» истекает %s.", license.Name, license.ExpiryDate.Format("02.01.2006")),
			Priority:          constants.NotificationPriorityMedium,
			CompanyID:         license.CompanyID,
			RelatedEntityType: constants.RelatedEntityLicense,
			RelatedEntityID:   license.ID,
			Recipients:        recipients,
			Suppress:          true,
		})
		if err != nil {
			s.logger.Error("рассылка по истекающей лицензии не удалась",
				zap.Uint64("licenseId", license.ID), zap.Error(err))
		}
	}

	return len(licenses), nil
}

// RunAll — один полный проход: выдачи + лицензии.
func (s *SweepService) RunAll(ctx context.Context, now time.Time) (SweepResult, error) {
	result, err := s.SweepLoans(ctx, now)
	if err != nil {
		return result, err
	}

	expiring, err := s.SweepLicenses(ctx, now)
	if err != nil {
		return result, err
	}
	result.ExpiringLicenses = expiring

	return result, nil
}

func (s *SweepService) notifyLoan(ctx context.Context, loan *entities.Loan, notifType, priority, title, message string, suppress bool) {
	recipients := []*uint64{
		s.resolveEmployeeUser(ctx, loan.BorrowerEmployeeID),
		s.resolveEmployeeUser(ctx, loan.ResponsibleEmployeeID),
		utils.ToPtr(loan.RequestedByID),
		loan.ApprovedByID,
	}

	_, err := s.emitter.Notify(ctx, NotificationEvent{
		Type:              notifType,
		Title:             title,
		Message:           message,
		Priority:          priority,
		CompanyID:         loan.CompanyID,
		RelatedEntityType: constants.RelatedEntityLoan,
		RelatedEntityID:   loan.ID,
		Recipients:        recipients,
		Suppress:          suppress,
	})
	if err != nil {
		s.logger.Error("рассылка по выдаче не удалась",
			zap.Uint64("loanId", loan.ID), zap.Error(err))
	}
}

// resolveEmployeeUser возвращает идентификатор учетной записи сотрудника
// или nil, если сотрудник не найден либо учетной записи у него нет.
func (s *SweepService) resolveEmployeeUser(ctx context.Context, employeeID uint64) *uint64 {
	employee, err := s.employeeRepo.FindEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Warn("не удалось найти сотрудника для уведомления",
			zap.Uint64("employeeId", employeeID), zap.Error(err))
		return nil
	}
	return employee.UserID
}
