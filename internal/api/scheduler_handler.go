package api

import (
	"context"
	"net/http"
)

// StartScheduler запускает фоновый опрос.
// POST /v1/scheduler/start
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	// Опрос не должен завершаться вместе с запросом.
	if err := h.sched.Start(context.WithoutCancel(r.Context())); HandleSchedulerError(w, h.logger, err) {
		return
	}
	Success(w, map[string]bool{"running": true})
}

// StopScheduler останавливает фоновый опрос; уже запущенные активации
// дорабатывают до конца.
// POST /v1/scheduler/stop
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	if err := h.sched.Stop(); HandleSchedulerError(w, h.logger, err) {
		return
	}
	Success(w, map[string]bool{"running": false})
}

// SchedulerStatus возвращает текущее состояние running.
// GET /v1/scheduler/status
func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	Success(w, map[string]bool{"running": h.sched.IsRunning()})
}
