package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/tasksched/internal/domain"
)

// Postgres — хранилище задач на PostgreSQL: upsert по ID через ON CONFLICT,
// отдельные nullable-колонки start_date/end_date/delay_between_runs для
// варианта Range (см. internal/migrate/migrations).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres оборачивает уже открытый pgxpool.Pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// NewPool открывает пул соединений к PostgreSQL по переданному dsn и
// проверяет его ping'ом.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// SaveTask выполняет upsert по id, перезаписывая все неключевые колонки.
func (p *Postgres) SaveTask(ctx context.Context, task domain.Task) error {
	actionJSON, err := domain.MarshalAction(task.Action)
	if err != nil {
		return fmt.Errorf("marshal action: %w", err)
	}

	query := `
		INSERT INTO tasks (id, schedule_type, last_run, next_run, retry_count,
		                    max_retries, retry_delay, enabled, action,
		                    start_date, end_date, delay_between_runs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			schedule_type      = EXCLUDED.schedule_type,
			last_run           = EXCLUDED.last_run,
			next_run           = EXCLUDED.next_run,
			retry_count        = EXCLUDED.retry_count,
			max_retries        = EXCLUDED.max_retries,
			retry_delay        = EXCLUDED.retry_delay,
			enabled            = EXCLUDED.enabled,
			action             = EXCLUDED.action,
			start_date         = EXCLUDED.start_date,
			end_date           = EXCLUDED.end_date,
			delay_between_runs = EXCLUDED.delay_between_runs
	`
	_, err = p.pool.Exec(ctx, query,
		task.ID,
		task.Schedule.Type,
		task.LastRun,
		task.NextRun,
		task.RetryCount,
		task.MaxRetries,
		retryDelayMillis(task.RetryDelay),
		task.Enabled,
		actionJSON,
		nullTime(task.Schedule.Start),
		nullTime(task.Schedule.End),
		nullDurationMillis(task.Schedule.Step),
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

// GetTask возвращает task по ID. Отсутствие — (_, false, nil), не ошибка.
func (p *Postgres) GetTask(ctx context.Context, id uuid.UUID) (domain.Task, bool, error) {
	row := p.pool.QueryRow(ctx, selectTaskQuery+" WHERE id = $1", id)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, err
	}
	return task, true, nil
}

// GetAllTasks возвращает все задачи; порядок не задан (запрос без ORDER BY).
func (p *Postgres) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := p.pool.Query(ctx, selectTaskQuery)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// DeleteTask удаляет task по id; отсутствие task не является ошибкой.
func (p *Postgres) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// GetReadyTasks возвращает задачи с enabled = true и next_run <= now().
func (p *Postgres) GetReadyTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := p.pool.Query(ctx, selectTaskQuery+` WHERE enabled = TRUE AND next_run <= NOW()`)
	if err != nil {
		return nil, fmt.Errorf("list ready tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

const selectTaskQuery = `
	SELECT id, schedule_type, last_run, next_run, retry_count, max_retries,
	       retry_delay, enabled, action, start_date, end_date, delay_between_runs
	FROM tasks
`

// taskRow — фигура одной строки, общая для pgx.Row и pgx.Rows.
type taskRow interface {
	Scan(dest ...any) error
}

func scanTask(row taskRow) (domain.Task, error) {
	var (
		task          domain.Task
		scheduleType  int16
		retryDelayMs  int64
		actionJSON    []byte
		startDate     *time.Time
		endDate       *time.Time
		delayBetweenMs *int64
	)

	err := row.Scan(
		&task.ID,
		&scheduleType,
		&task.LastRun,
		&task.NextRun,
		&task.RetryCount,
		&task.MaxRetries,
		&retryDelayMs,
		&task.Enabled,
		&actionJSON,
		&startDate,
		&endDate,
		&delayBetweenMs,
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("scan task: %w", err)
	}

	task.RetryDelay = time.Duration(retryDelayMs) * time.Millisecond

	switch domain.ScheduleType(scheduleType) {
	case domain.ScheduleTypeOnce:
		task.Schedule = domain.Once()
	case domain.ScheduleTypeRange:
		if startDate == nil || endDate == nil {
			return domain.Task{}, fmt.Errorf("%w: range task %s is missing start_date or end_date",
				domain.ErrInvalidSchedule, task.ID)
		}
		step := domain.DefaultRangeStep
		if delayBetweenMs != nil {
			step = time.Duration(*delayBetweenMs) * time.Millisecond
		}
		task.Schedule = domain.RangeSchedule(*startDate, *endDate, step)
	default:
		return domain.Task{}, fmt.Errorf("%w: unknown schedule_type %d for task %s",
			domain.ErrInvalidSchedule, scheduleType, task.ID)
	}

	action, err := domain.UnmarshalAction(actionJSON)
	if err != nil {
		return domain.Task{}, fmt.Errorf("unmarshal action for task %s: %w", task.ID, err)
	}
	task.Action = action

	return task, nil
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullDurationMillis(d time.Duration) *int64 {
	if d <= 0 {
		return nil
	}
	ms := d.Milliseconds()
	return &ms
}

func retryDelayMillis(d time.Duration) int64 {
	return d.Milliseconds()
}
