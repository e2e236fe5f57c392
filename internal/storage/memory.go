// Package storage реализует контракт scheduler.Storage: хранилище в памяти
// для разработки и тестов, и хранилище на PostgreSQL для продакшена.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/tasksched/internal/domain"
)

// Memory хранит задачи в map под sync.RWMutex. Каждая операция чтения
// возвращает копии значений domain.Task, снятые под блокировкой, — это даёт
// get_ready_tasks гарантию "без порванных задач" под конкурентной записью.
// Копии поверхностные: указатель LastRun разделяется с хранимым значением.
type Memory struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
}

// NewMemory создаёт пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[uuid.UUID]domain.Task)}
}

// SaveTask выполняет upsert по task.ID.
func (m *Memory) SaveTask(_ context.Context, task domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return nil
}

// GetTask возвращает копию task по ID.
func (m *Memory) GetTask(_ context.Context, id uuid.UUID) (domain.Task, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[id]
	return task, ok, nil
}

// GetAllTasks возвращает снимок всех задач в неспецифицированном порядке.
func (m *Memory) GetAllTasks(_ context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		out = append(out, task)
	}
	return out, nil
}

// DeleteTask удаляет task по ID; отсутствие task не является ошибкой.
func (m *Memory) DeleteTask(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

// GetReadyTasks возвращает задачи с Enabled=true и NextRun <= now.
func (m *Memory) GetReadyTasks(_ context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now().UTC()
	var ready []domain.Task
	for _, task := range m.tasks {
		if task.Enabled && !task.NextRun.After(now) {
			ready = append(ready, task)
		}
	}
	return ready, nil
}
