package executors

import (
	"context"
	"fmt"

	"github.com/shaiso/tasksched/internal/domain"
	"github.com/shaiso/tasksched/internal/mq"
	"github.com/shaiso/tasksched/internal/scheduler"
)

// BotMessage выполняет SendBotMessageAction, публикуя запрос на доставку во
// внешний чат-фронтенд через RabbitMQ. Сам этот сервис никогда не
// обращается к чат-платформе напрямую — публикация в очередь и есть
// "выполнение" этого action'а.
type BotMessage struct {
	publisher *mq.Publisher
}

// NewBotMessage создаёт BotMessage-executor поверх уже настроенного Publisher.
func NewBotMessage(publisher *mq.Publisher) *BotMessage {
	return &BotMessage{publisher: publisher}
}

// SupportedActions реализует scheduler.ActionExecutor.
func (b *BotMessage) SupportedActions() []domain.ActionType {
	return []domain.ActionType{domain.ActionTypeSendBotMessage}
}

// Execute реализует scheduler.ActionExecutor.
func (b *BotMessage) Execute(ctx context.Context, task domain.Task, action domain.Action) error {
	botAction, ok := action.(domain.SendBotMessageAction)
	if !ok {
		return fmt.Errorf("%w: expected SendBotMessageAction, got %T", scheduler.ErrUnsupportedAction, action)
	}

	if err := b.publisher.PublishBotMessage(ctx, task.ID, botAction.ChatID, botAction.Message); err != nil {
		return fmt.Errorf("%w: %w", scheduler.ErrTaskExecutionError, err)
	}
	return nil
}
