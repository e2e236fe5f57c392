package api

import "net/http"

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	mux.Handle("POST /v1/tasks", chain(http.HandlerFunc(h.SubmitTask)))
	mux.Handle("GET /v1/tasks", chain(http.HandlerFunc(h.ListTasks)))
	mux.Handle("GET /v1/tasks/{id}", chain(http.HandlerFunc(h.GetTask)))
	mux.Handle("DELETE /v1/tasks/{id}", chain(http.HandlerFunc(h.DeleteTask)))
	mux.Handle("PUT /v1/tasks/{id}/enabled", chain(http.HandlerFunc(h.SetTaskEnabled)))

	mux.Handle("POST /v1/scheduler/start", chain(http.HandlerFunc(h.StartScheduler)))
	mux.Handle("POST /v1/scheduler/stop", chain(http.HandlerFunc(h.StopScheduler)))
	mux.Handle("GET /v1/scheduler/status", chain(http.HandlerFunc(h.SchedulerStatus)))
}
