package domain

import (
	"encoding/json"
	"fmt"
)

// ActionType — закрытое перечисление вариантов Action. Registry диспетчеризует
// по этому тегу, а не по конкретному Go-типу, так что новые варианты Action
// добавляются без изменения способа поиска executor'ов.
type ActionType string

const (
	// ActionTypeSendBotMessage — доставка сообщения через внешний (out of
	// scope) мессенджер-фронтенд.
	ActionTypeSendBotMessage ActionType = "send_bot_message"

	// ActionTypeLog — запись строки лога на заданном уровне.
	ActionTypeLog ActionType = "log"
)

// Action — декларативный побочный эффект, который выполняет Task. Это
// размеченный вариант: каждый конкретный тип payload'а знает свой ActionType.
type Action interface {
	ActionType() ActionType
}

// SendBotMessageAction просит мессенджер-фронтенд доставить message в chatID.
// Планировщик никогда не обращается к мессенджеру напрямую — он лишь передаёт
// этот payload зарегистрированному executor'у, поддерживающему ActionTypeSendBotMessage.
type SendBotMessageAction struct {
	ChatID  int64  `json:"chat_id"`
	Message string `json:"message"`
}

// ActionType реализует Action.
func (SendBotMessageAction) ActionType() ActionType { return ActionTypeSendBotMessage }

// LogAction записывает Message на уровне Level ("debug", "info", "warn",
// "error"). Нераспознанный Level логируется на уровне warn вместе с
// исходной строкой.
type LogAction struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

// ActionType реализует Action.
func (LogAction) ActionType() ActionType { return ActionTypeLog }

// wireAction — самоописывающийся формат хранения/передачи: тег типа плюс
// объект payload'а. Имена полей — часть wire-формата, менять их нельзя.
type wireAction struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalAction кодирует action в формат {type, payload}, используемый как
// для хранения, так и для сообщений очереди.
func MarshalAction(action Action) ([]byte, error) {
	if action == nil {
		return nil, fmt.Errorf("%w: action is nil", ErrActionEncoding)
	}

	payload, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("marshal action payload: %w", err)
	}

	return json.Marshal(wireAction{Type: action.ActionType(), Payload: payload})
}

// UnmarshalAction декодирует формат {type, payload}. Неизвестный тег типа —
// ошибка десериализации: старый процесс обязан отклонить тег, которого не
// знает, а не молча отбросить task.
func UnmarshalAction(data []byte) (Action, error) {
	var wire wireAction
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal action envelope: %w", err)
	}

	switch wire.Type {
	case ActionTypeSendBotMessage:
		var a SendBotMessageAction
		if err := json.Unmarshal(wire.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal send_bot_message payload: %w", err)
		}
		return a, nil
	case ActionTypeLog:
		var a LogAction
		if err := json.Unmarshal(wire.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal log payload: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, wire.Type)
	}
}
