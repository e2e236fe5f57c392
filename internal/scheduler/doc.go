// Package scheduler реализует логику планировщика задач: хранение-агностичный
// контракт Storage, диспетчеризацию Action через ActionRegistry и фоновый
// опрос готовых к активации задач с retry/backoff.
//
// Структура:
//   - errors.go   — таксономия ошибок (ErrAlreadyRunning, ErrActionNotFound, ...)
//   - executor.go — контракт ActionExecutor
//   - registry.go — ActionRegistry: insertion-ordered, first-match-wins поиск
//   - storage.go  — контракт Storage, реализуемый internal/storage
//   - scheduler.go — TaskScheduler: Start/Stop, pollLoop, runWorker (retry/backoff)
//
// Использование:
//
//	registry := scheduler.NewRegistry()
//	registry.Register(executors.NewLog(logger))
//	sched := scheduler.New(store, registry, logger)
//	sched.Start(ctx)
//	id, err := sched.Submit(ctx, task)
//
// Leader Election:
//
// Ровно один процесс scheduler-daemon опрашивает общее хранилище —
// at-most-once-in-flight гарантируется одним процессом, а не блокировкой
// на уровне базы данных.
package scheduler
