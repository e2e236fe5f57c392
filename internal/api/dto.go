package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/tasksched/internal/domain"
)

// SubmitTaskRequest — тело запроса POST /v1/tasks.
type SubmitTaskRequest struct {
	// Schedule — "once" или "range".
	Schedule string `json:"schedule"`

	// NextRun — момент активации для schedule="once" (RFC3339).
	NextRun *time.Time `json:"next_run,omitempty"`

	// Start, End — границы для schedule="range" (RFC3339, включительно).
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`

	// DelayBetweenRunsMs — шаг между активациями range, в миллисекундах.
	// По умолчанию domain.DefaultRangeStep.
	DelayBetweenRunsMs int64 `json:"delay_between_runs_ms,omitempty"`

	// MaxRetries, RetryDelayMs — параметры retry/backoff; по умолчанию
	// domain.DefaultMaxRetries / domain.DefaultRetryDelay.
	MaxRetries   *int   `json:"max_retries,omitempty"`
	RetryDelayMs *int64 `json:"retry_delay_ms,omitempty"`

	// Action — самоописывающийся {type, payload}, см. domain.UnmarshalAction.
	Action json.RawMessage `json:"action"`
}

// ToTask конвертирует запрос в domain.Task, не сохраняя его.
func (req SubmitTaskRequest) ToTask() (domain.Task, error) {
	action, err := domain.UnmarshalAction(req.Action)
	if err != nil {
		return domain.Task{}, fmt.Errorf("decode action: %w", err)
	}

	var task domain.Task
	switch req.Schedule {
	case "once":
		if req.NextRun == nil {
			return domain.Task{}, fmt.Errorf("next_run is required for schedule=once")
		}
		task = domain.From(*req.NextRun, action)
	case "range":
		if req.Start == nil || req.End == nil {
			return domain.Task{}, fmt.Errorf("start and end are required for schedule=range")
		}
		task = domain.FromRange(*req.Start, *req.End, action)
		if req.DelayBetweenRunsMs > 0 {
			task = task.WithDelayBetweenRuns(time.Duration(req.DelayBetweenRunsMs) * time.Millisecond)
		}
	default:
		return domain.Task{}, fmt.Errorf("unknown schedule %q: must be \"once\" or \"range\"", req.Schedule)
	}

	if req.MaxRetries != nil {
		task = task.WithMaxRetries(*req.MaxRetries)
	}
	if req.RetryDelayMs != nil {
		task = task.WithRetryDelay(time.Duration(*req.RetryDelayMs) * time.Millisecond)
	}

	if err := task.Schedule.Validate(); err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

// TaskResponse — представление domain.Task во внешнем API.
type TaskResponse struct {
	ID         uuid.UUID       `json:"id"`
	Schedule   string          `json:"schedule"`
	NextRun    time.Time       `json:"next_run"`
	LastRun    *time.Time      `json:"last_run,omitempty"`
	Enabled    bool            `json:"enabled"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	Action     json.RawMessage `json:"action"`
}

// TaskFromDomain конвертирует domain.Task в TaskResponse.
func TaskFromDomain(task domain.Task) (TaskResponse, error) {
	actionJSON, err := domain.MarshalAction(task.Action)
	if err != nil {
		return TaskResponse{}, err
	}

	scheduleKind := "once"
	if task.Schedule.IsRange() {
		scheduleKind = "range"
	}

	return TaskResponse{
		ID:         task.ID,
		Schedule:   scheduleKind,
		NextRun:    task.NextRun,
		LastRun:    task.LastRun,
		Enabled:    task.Enabled,
		RetryCount: task.RetryCount,
		MaxRetries: task.MaxRetries,
		Action:     actionJSON,
	}, nil
}

// SetEnabledRequest — тело запроса PUT /v1/tasks/{id}/enabled.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}
