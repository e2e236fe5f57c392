// Package api содержит HTTP API сервер для отправки и управления задачами
// планировщика.
//
// Структура:
//   - handler.go           — Handler с DI (TaskScheduler, storage, logger)
//   - routes.go            — регистрация маршрутов
//   - middleware.go        — middleware (logging, recovery)
//   - response.go          — унифицированные JSON-ответы и обработка ошибок
//   - dto.go               — Data Transfer Objects (request/response)
//   - task_handler.go      — обработчики для /v1/tasks
//   - scheduler_handler.go — обработчики для /v1/scheduler/{start,stop,status}
package api
