package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// SubmitTask принимает новый task.
// POST /v1/tasks
func (h *Handler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	var req SubmitTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	task, err := req.ToTask()
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	id, err := h.sched.Submit(r.Context(), task)
	if HandleSchedulerError(w, h.logger, err) {
		return
	}

	Created(w, map[string]uuid.UUID{"id": id})
}

// ListTasks возвращает все задачи, известные хранилищу.
// GET /v1/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.storage.GetAllTasks(r.Context())
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	result := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp, err := TaskFromDomain(task)
		if err != nil {
			InternalError(w, h.logger, err)
			return
		}
		result = append(result, resp)
	}

	List(w, result, len(result))
}

// GetTask возвращает один task по ID.
// GET /v1/tasks/{id}
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid task id")
		return
	}

	task, found, err := h.storage.GetTask(r.Context(), id)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}
	if !found {
		NotFound(w, "task not found")
		return
	}

	resp, err := TaskFromDomain(task)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, resp)
}

// DeleteTask удаляет task по ID.
// DELETE /v1/tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid task id")
		return
	}

	if err := h.storage.DeleteTask(r.Context(), id); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// SetTaskEnabled включает/выключает task без изменения остального
// состояния.
// PUT /v1/tasks/{id}/enabled
func (h *Handler) SetTaskEnabled(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid task id")
		return
	}

	var req SetEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	task, found, err := h.storage.GetTask(r.Context(), id)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}
	if !found {
		NotFound(w, "task not found")
		return
	}

	task.Enabled = req.Enabled
	if err := h.storage.SaveTask(r.Context(), task); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	resp, err := TaskFromDomain(task)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, resp)
}
