// Package mq предоставляет интеграцию с RabbitMQ, используемую
// internal/executors.BotMessage для доставки send_bot_message-активаций
// внешнему чат-фронтенду.
//
// Включает:
//   - connection.go — управление подключением с auto-reconnect
//   - publisher.go  — публикация сообщений в exchange
//   - topology.go   — декларация обменника, очереди и routing key
//
// Эта система только публикует; потребление очереди — ответственность
// внешнего чат-фронтенда, вне области этого модуля.
package mq
