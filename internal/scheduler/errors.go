package scheduler

import "errors"

// Ошибки планировщика.
var (
	// ErrAlreadyRunning — попытка запустить уже запущенный планировщик.
	ErrAlreadyRunning = errors.New("scheduler is already running")

	// ErrNotRunning — операция требует запущенного планировщика.
	ErrNotRunning = errors.New("scheduler is not running")

	// ErrDatabaseError — ошибка слоя хранения.
	ErrDatabaseError = errors.New("database error")

	// ErrMigrationError — ошибка применения миграций схемы.
	ErrMigrationError = errors.New("migration error")

	// ErrTaskExecutionError — ошибка выполнения action в рамках активации.
	ErrTaskExecutionError = errors.New("task execution error")

	// ErrActionMissing — task сохранён без action.
	ErrActionMissing = errors.New("task has no action")

	// ErrActionNotFound — в реестре нет executor'а для данного ActionType.
	ErrActionNotFound = errors.New("no executor registered for action type")

	// ErrUnsupportedAction — executor вызван с ActionType, который он не
	// объявлял в SupportedActions.
	ErrUnsupportedAction = errors.New("executor does not support this action type")

	// ErrIO — ошибка ввода-вывода (сеть, файловая система) за пределами
	// слоя хранения.
	ErrIO = errors.New("io error")

	// ErrSerde — ошибка кодирования/декодирования.
	ErrSerde = errors.New("serialization error")
)
