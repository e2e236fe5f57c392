package api

import (
	"log/slog"

	"github.com/shaiso/tasksched/internal/scheduler"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	sched   *scheduler.TaskScheduler
	storage scheduler.Storage
	logger  *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Scheduler *scheduler.TaskScheduler
	Storage   scheduler.Storage
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sched:   cfg.Scheduler,
		storage: cfg.Storage,
		logger:  logger,
	}
}
