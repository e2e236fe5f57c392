package domain

import (
	"time"

	"github.com/google/uuid"
)

// Параметры retry/backoff по умолчанию.
const (
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1000 * time.Millisecond
	DefaultCheckPeriod = 500 * time.Millisecond
)

// Task — единица планирования: идентичность, расписание, учёт retry и
// действие, выполняемое по наступлению срока.
//
// Task — обычное значение, которым управляют вызывающие (front-end driver,
// слой хранения, worker планировщика); жизненный цикл ведёт планировщик.
type Task struct {
	ID uuid.UUID

	Schedule Schedule

	// NextRun — абсолютный момент времени (UTC), в который task становится
	// готов к выполнению.
	NextRun time.Time

	// LastRun — устанавливается после первого завершённого срабатывания
	// (успех или окончательный провал); nil до этого момента.
	LastRun *time.Time

	// Enabled — флаг выборки: отключённый task никогда не попадает в
	// get_ready_tasks.
	Enabled bool

	// RetryCount — число попыток в рамках текущего срабатывания; сбрасывается
	// по его завершении.
	RetryCount int

	// MaxRetries — предел RetryCount на срабатывание.
	MaxRetries int

	// RetryDelay — базовая задержка backoff; фактическая задержка удваивается
	// с каждой попыткой (см. CalculateRetryDelay).
	RetryDelay time.Duration

	// Action — побочный эффект, выполняемый по наступлению срока. Task без
	// Action недопустим.
	Action Action
}

// From строит однократный ("Once") Task, срабатывающий в nextRun.
func From(nextRun time.Time, action Action) Task {
	return Task{
		ID:         uuid.New(),
		Schedule:   Once(),
		NextRun:    nextRun.UTC(),
		Enabled:    true,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Action:     action,
	}
}

// FromRange строит Task с ограниченным повтором от start до end. NextRun
// инициализируется значением start; шаг по умолчанию — DefaultRangeStep,
// переопределяется через WithDelayBetweenRuns.
func FromRange(start, end time.Time, action Action) Task {
	sched := RangeSchedule(start, end, 0)
	return Task{
		ID:         uuid.New(),
		Schedule:   sched,
		NextRun:    sched.Start,
		Enabled:    true,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Action:     action,
	}
}

// WithMaxRetries задаёт предел попыток на срабатывание.
func (t Task) WithMaxRetries(maxRetries int) Task {
	t.MaxRetries = maxRetries
	return t
}

// WithRetryDelay задаёт базовую задержку backoff.
func (t Task) WithRetryDelay(retryDelay time.Duration) Task {
	t.RetryDelay = retryDelay
	return t
}

// WithDelayBetweenRuns переопределяет шаг между срабатываниями Range. Не
// действует на Once.
func (t Task) WithDelayBetweenRuns(step time.Duration) Task {
	if t.Schedule.IsRange() && step > 0 {
		t.Schedule.Step = step
	}
	return t
}

// CalculateNextRun продвигает расписание после завершённого срабатывания:
//   - Once отключает task; NextRun не меняется.
//   - Range предлагает candidate = NextRun + Step. Если candidate выходит за
//     End, task отключается и становится терминальным; иначе NextRun
//     становится candidate.
func (t *Task) CalculateNextRun() {
	switch t.Schedule.Type {
	case ScheduleTypeOnce:
		t.Enabled = false
	case ScheduleTypeRange:
		candidate := t.NextRun.Add(t.Schedule.Step)
		if candidate.After(t.Schedule.End) {
			t.Enabled = false
			return
		}
		t.NextRun = candidate
	}
}

// CalculateRetryDelay возвращает экспоненциальную задержку для текущего
// RetryCount: RetryDelay * 2^RetryCount. Вычисляется перед сном между
// попытками. Задержка удваивается без ограничения сверху; MaxRetries
// ограничивает суммарное время.
func (t Task) CalculateRetryDelay() time.Duration {
	multiplier := time.Duration(1) << uint(t.RetryCount) //nolint:gosec // ограничено MaxRetries на практике
	return t.RetryDelay * multiplier
}

// ShouldRetry сообщает, разрешена ли ещё одна попытка в рамках текущего
// срабатывания.
func (t Task) ShouldRetry() bool {
	return t.RetryCount < t.MaxRetries
}

// ResetRetryCount обнуляет RetryCount; вызывается по завершении срабатывания
// (успех или исчерпание попыток).
func (t *Task) ResetRetryCount() {
	t.RetryCount = 0
}

// MarkCompleted фиксирует LastRun равным now. Вызывается один раз на
// срабатывание, независимо от исхода.
func (t *Task) MarkCompleted(now time.Time) {
	t.LastRun = &now
}
