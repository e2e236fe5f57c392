package scheduler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaiso/tasksched/internal/domain"
)

// Storage — контракт персистентного хранилища задач. Обе реализации
// (internal/storage.Memory, internal/storage.Postgres) реализуют этот
// интерфейс, не импортируя пакет scheduler — он объявлен на стороне
// потребителя.
type Storage interface {
	// SaveTask создаёт или обновляет task (upsert по ID).
	SaveTask(ctx context.Context, task domain.Task) error

	// GetTask возвращает task по ID. Отсутствие task — не ошибка: второе
	// возвращаемое значение (bool) сообщает, найден ли он.
	GetTask(ctx context.Context, id uuid.UUID) (domain.Task, bool, error)

	// GetAllTasks возвращает снимок всех задач, независимо от готовности.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)

	// DeleteTask удаляет task по ID. Удаление отсутствующего task не
	// является ошибкой.
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// GetReadyTasks возвращает задачи с Enabled=true и NextRun <= now.
	GetReadyTasks(ctx context.Context) ([]domain.Task, error)
}
