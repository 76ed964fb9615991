package listeners

import (
	"context"

	"go.uber.org/zap"

	"asset-system/internal/events"
	"asset-system/pkg/eventbus"
)

// ExecutionListener слушает события выполнения заявок. Сюда подключаются
// push-каналы доставки (websocket, email-шлюз); сама доставка — отдельный
// транспорт и на бизнес-переход не влияет.
type ExecutionListener struct {
	logger *zap.Logger
}

func NewExecutionListener(logger *zap.Logger) *ExecutionListener {
	return &ExecutionListener{logger: logger}
}

func (l *ExecutionListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.AssetRequestExecutedEventName, l.handleExecuted)
}

func (l *ExecutionListener) handleExecuted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssetRequestExecutedEvent)
	if !ok {
		return nil
	}

	l.logger.Info("событие: заявка выполнена",
		zap.String("eventId", e.EventID.String()),
		zap.Uint64("companyId", e.CompanyID),
		zap.Uint64("requestId", e.RequestID),
		zap.Uint64("assetId", e.AssetID),
		zap.String("assetStatus", e.AssetStatus),
	)
	return nil
}
