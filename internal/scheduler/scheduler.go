package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/services"
)

// Scheduler запускает периодические проходы: выдачи каждые LoanInterval,
// лицензии каждые LicenseInterval. Каждый цикл стартует с немедленного
// прохода при запуске процесса. Интервалы предполагаются заметно длиннее
// самого прохода, поэтому параллельных проходов одного типа не бывает.
type Scheduler struct {
	sweepService    services.SweepServiceInterface
	loanInterval    time.Duration
	licenseInterval time.Duration
	logger          *zap.Logger
}

func New(
	sweepService services.SweepServiceInterface,
	loanInterval time.Duration,
	licenseInterval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		sweepService:    sweepService,
		loanInterval:    loanInterval,
		licenseInterval: licenseInterval,
		logger:          logger,
	}
}

// Start поднимает фоновые циклы. Отмена ctx останавливает оба.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runLoop(ctx, "loan_sweep", s.loanInterval, s.runLoanSweep)
	go s.runLoop(ctx, "license_sweep", s.licenseInterval, s.runLicenseSweep)
}

// RunNow — ручной запуск полного прохода (кнопка "проверить сейчас").
func (s *Scheduler) RunNow(ctx context.Context) (services.SweepResult, error) {
	return s.sweepService.RunAll(ctx, time.Now())
}

func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, run func(ctx context.Context)) {
	// Немедленный проход при старте, дальше — по тикеру.
	run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("фоновый цикл остановлен", zap.String("loop", name))
			return
		case <-ticker.C:
			run(ctx)
		}
	}
}

func (s *Scheduler) runLoanSweep(ctx context.Context) {
	result, err := s.sweepService.SweepLoans(ctx, time.Now())
	if err != nil {
		s.logger.Error("проход по выдачам завершился ошибкой", zap.Error(err))
		return
	}
	s.logger.Info("проход по выдачам завершен",
		zap.Int("overdue", result.Overdue),
		zap.Int("dueToday", result.DueToday),
		zap.Int("dueSoon", result.DueSoon),
	)
}

func (s *Scheduler) runLicenseSweep(ctx context.Context) {
	count, err := s.sweepService.SweepLicenses(ctx, time.Now())
	if err != nil {
		s.logger.Error("проход по лицензиям завершился ошибкой", zap.Error(err))
		return
	}
	s.logger.Info("проход по лицензиям завершен", zap.Int("expiring", count))
}
