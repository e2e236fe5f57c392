package cliclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response/request типы (дублируются из internal/api, CLI не импортирует внутренние пакеты) ---

// TaskResponse — task из API.
type TaskResponse struct {
	ID         string          `json:"id"`
	Schedule   string          `json:"schedule"`
	NextRun    time.Time       `json:"next_run"`
	LastRun    *time.Time      `json:"last_run,omitempty"`
	Enabled    bool            `json:"enabled"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	Action     json.RawMessage `json:"action"`
}

// SubmitTaskRequest — тело запроса POST /v1/tasks.
type SubmitTaskRequest struct {
	Schedule           string          `json:"schedule"`
	NextRun            *time.Time      `json:"next_run,omitempty"`
	Start              *time.Time      `json:"start,omitempty"`
	End                *time.Time      `json:"end,omitempty"`
	DelayBetweenRunsMs int64           `json:"delay_between_runs_ms,omitempty"`
	MaxRetries         *int            `json:"max_retries,omitempty"`
	RetryDelayMs       *int64          `json:"retry_delay_ms,omitempty"`
	Action             json.RawMessage `json:"action"`
}

// SetEnabledRequest — тело запроса PUT /v1/tasks/{id}/enabled.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// SubmitTaskResult — ответ на создание задачи.
type SubmitTaskResult struct {
	ID string `json:"id"`
}

// SchedulerStatusResponse — состояние планировщика.
type SchedulerStatusResponse struct {
	Running bool `json:"running"`
}

// --- обёртки ответов API ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для API планировщика задач.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Tasks ---

// SubmitTask отправляет новую задачу на выполнение.
func (c *Client) SubmitTask(req SubmitTaskRequest) (*SubmitTaskResult, error) {
	var result SubmitTaskResult
	err := c.doData(http.MethodPost, "/v1/tasks", req, &result)
	return &result, err
}

// ListTasks возвращает все задачи.
func (c *Client) ListTasks() ([]TaskResponse, error) {
	var tasks []TaskResponse
	err := c.list("/v1/tasks", &tasks)
	return tasks, err
}

// GetTask возвращает задачу по ID.
func (c *Client) GetTask(id string) (*TaskResponse, error) {
	var task TaskResponse
	err := c.doData(http.MethodGet, "/v1/tasks/"+id, nil, &task)
	return &task, err
}

// DeleteTask удаляет задачу по ID.
func (c *Client) DeleteTask(id string) error {
	return c.doData(http.MethodDelete, "/v1/tasks/"+id, nil, nil)
}

// SetTaskEnabled включает или выключает задачу.
func (c *Client) SetTaskEnabled(id string, enabled bool) (*TaskResponse, error) {
	var task TaskResponse
	err := c.doData(http.MethodPut, "/v1/tasks/"+id+"/enabled", SetEnabledRequest{Enabled: enabled}, &task)
	return &task, err
}

// --- Scheduler ---

// StartScheduler запускает фоновый опрос.
func (c *Client) StartScheduler() (*SchedulerStatusResponse, error) {
	var status SchedulerStatusResponse
	err := c.doData(http.MethodPost, "/v1/scheduler/start", nil, &status)
	return &status, err
}

// StopScheduler останавливает фоновый опрос.
func (c *Client) StopScheduler() (*SchedulerStatusResponse, error) {
	var status SchedulerStatusResponse
	err := c.doData(http.MethodPost, "/v1/scheduler/stop", nil, &status)
	return &status, err
}

// SchedulerStatus возвращает текущее состояние running.
func (c *Client) SchedulerStatus() (*SchedulerStatusResponse, error) {
	var status SchedulerStatusResponse
	err := c.doData(http.MethodGet, "/v1/scheduler/status", nil, &status)
	return &status, err
}

// --- внутреннее ---

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
