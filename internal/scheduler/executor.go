package scheduler

import (
	"context"

	"github.com/shaiso/tasksched/internal/domain"
)

// ActionExecutor выполняет один или несколько вариантов Action. Один
// executor может обслуживать несколько ActionType — например, executor,
// отправляющий во внешний сервис, может поддерживать и send_bot_message, и
// его будущие варианты.
type ActionExecutor interface {
	// SupportedActions возвращает набор ActionType, которые этот executor
	// умеет выполнять. Registry опрашивает его при каждом поиске executor'а
	// (HasExecutorFor и Execute).
	SupportedActions() []domain.ActionType

	// Execute выполняет action в контексте task. Ошибка инициирует
	// retry/backoff на уровне TaskScheduler (см. Task.ShouldRetry,
	// Task.CalculateRetryDelay).
	Execute(ctx context.Context, task domain.Task, action domain.Action) error
}
