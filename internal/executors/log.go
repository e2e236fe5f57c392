// Package executors содержит встроенные реализации scheduler.ActionExecutor.
package executors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/tasksched/internal/domain"
	"github.com/shaiso/tasksched/internal/scheduler"
	"github.com/shaiso/tasksched/internal/telemetry"
)

// Log выполняет LogAction, записывая сообщение через slog на указанном
// уровне. Нераспознанный уровень логируется как warn с пометкой об этом.
type Log struct {
	logger *slog.Logger
}

// NewLog создаёт Log-executor.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// SupportedActions реализует scheduler.ActionExecutor.
func (l *Log) SupportedActions() []domain.ActionType {
	return []domain.ActionType{domain.ActionTypeLog}
}

// Execute реализует scheduler.ActionExecutor. Предпочитает логгер,
// привязанный к ctx (task_id/schedule_kind уже навешаны TaskScheduler'ом);
// если в ctx логгера нет, использует логгер, переданный в NewLog.
func (l *Log) Execute(ctx context.Context, task domain.Task, action domain.Action) error {
	logAction, ok := action.(domain.LogAction)
	if !ok {
		return fmt.Errorf("%w: expected LogAction, got %T", scheduler.ErrUnsupportedAction, action)
	}

	logger := l.logger
	if ctxLogger := telemetry.FromContext(ctx); ctxLogger != slog.Default() {
		logger = ctxLogger
	}

	switch logAction.Level {
	case "debug":
		logger.Debug(logAction.Message, "task_id", task.ID)
	case "info":
		logger.Info(logAction.Message, "task_id", task.ID)
	case "warn":
		logger.Warn(logAction.Message, "task_id", task.ID)
	case "error":
		logger.Error(logAction.Message, "task_id", task.ID)
	default:
		logger.Warn("unknown log level",
			"task_id", task.ID, "level", logAction.Level, "message", logAction.Message)
	}

	return nil
}
