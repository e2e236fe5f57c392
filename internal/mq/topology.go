package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология планировщика: одно направление исходящих событий — доставка
// сообщений во внешний (вне области этой системы) чат-фронтенд, которому
// принадлежит обработка send_bot_message.
const (
	ExchangeNotifications Exchange   = "tasksched.notifications"
	QueueBotMessages      Queue      = "bot.messages"
	RoutingKeySend        RoutingKey = "send"
)

// SetupTopology объявляет обменник, очередь и связывающий их routing key.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeNotifications), // name
			"direct",                      // type
			true,                          // durable
			false,                         // auto-deleted
			false,                         // internal
			false,                         // no-wait
			nil,                           // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeNotifications, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueBotMessages), // name
			true,                     // durable
			false,                    // delete when unused
			false,                    // exclusive
			false,                    // no-wait
			nil,                      // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueBotMessages, err)
		}

		err = ch.QueueBind(
			string(QueueBotMessages),      // queue name
			string(RoutingKeySend),        // routing key
			string(ExchangeNotifications), // exchange
			false,                         // no-wait
			nil,                           // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueBotMessages, ExchangeNotifications, err)
		}

		return nil
	})
}

// TopologyInfo возвращает описание топологии для логирования при старте.
func TopologyInfo() string {
	return `
  tasksched RabbitMQ topology:

    tasksched.notifications (direct)
    └── bot.messages [routing: send]
            Consumer: external chat front-end (out of scope)
  `
}
