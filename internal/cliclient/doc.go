// Package cliclient реализует инструмент командной строки для планировщика задач.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с HTTP API планировщика.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для отправки задач и управления фоновым опросом.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для API. Инкапсулирует все HTTP-запросы, парсинг ответов
// (DataResponse, ListResponse, ErrorResponse) и обработку ошибок.
//
//	client := cliclient.NewClient("http://localhost:8080")
//	tasks, err := client.ListTasks()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: scheduler-cli task list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - task: submit, list, show, delete, enable, disable
//   - scheduler: start, stop, status
//
// Каждая группа создаётся через фабричную функцию (NewTaskCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cliclient
