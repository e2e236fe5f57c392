package scheduler

import (
	"context"
	"fmt"

	"github.com/shaiso/tasksched/internal/domain"
)

// ActionRegistry хранит executor'ы в порядке регистрации и диспетчеризует
// action к первому executor'у, объявившему её ActionType в SupportedActions.
//
// В отличие от исходной реализации, Execute не проглатывает отсутствие
// executor'а молчаливым успехом — он возвращает ErrActionNotFound, а
// Submit на уровне TaskScheduler проверяет HasExecutorFor заранее, так что
// этот путь не должен достигаться в нормальной работе.
type ActionRegistry struct {
	executors []ActionExecutor
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *ActionRegistry {
	return &ActionRegistry{}
}

// Register добавляет executor в конец списка. Порядок регистрации определяет
// приоритет при совпадении поддерживаемых типов у нескольких executor'ов.
func (r *ActionRegistry) Register(executor ActionExecutor) {
	r.executors = append(r.executors, executor)
}

// HasExecutorFor сообщает, есть ли зарегистрированный executor, поддерживающий
// данный ActionType.
func (r *ActionRegistry) HasExecutorFor(actionType domain.ActionType) bool {
	_, ok := r.find(actionType)
	return ok
}

// Execute находит первый executor, поддерживающий ActionType task.Action, и
// делегирует ему выполнение.
func (r *ActionRegistry) Execute(ctx context.Context, task domain.Task) error {
	if task.Action == nil {
		return fmt.Errorf("%w: task %s", ErrActionMissing, task.ID)
	}

	executor, ok := r.find(task.Action.ActionType())
	if !ok {
		return fmt.Errorf("%w: %s", ErrActionNotFound, task.Action.ActionType())
	}

	return executor.Execute(ctx, task, task.Action)
}

func (r *ActionRegistry) find(actionType domain.ActionType) (ActionExecutor, bool) {
	for _, executor := range r.executors {
		for _, supported := range executor.SupportedActions() {
			if supported == actionType {
				return executor, true
			}
		}
	}
	return nil, false
}
