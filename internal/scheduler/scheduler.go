package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/tasksched/internal/domain"
	"github.com/shaiso/tasksched/internal/telemetry"
)

// DefaultCheckInterval — периодичность опроса storage.GetReadyTasks по
// умолчанию.
const DefaultCheckInterval = 500 * time.Millisecond

// TaskScheduler — планировщик задач: хранилище, реестр executor'ов,
// фоновая горутина опроса и набор идентификаторов задач, выполняющихся
// прямо сейчас.
//
// Состояние разделяемое: running и executingTasks защищены sync.RWMutex,
// так что Start/Stop и worker-горутины безопасно обращаются к ним
// конкурентно.
type TaskScheduler struct {
	storage  Storage
	registry *ActionRegistry
	logger   *slog.Logger

	checkInterval time.Duration

	mu      sync.RWMutex
	running bool

	executingMu    sync.RWMutex
	executingTasks map[uuid.UUID]struct{}

	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// New создаёт TaskScheduler с интервалом опроса по умолчанию.
func New(storage Storage, registry *ActionRegistry, logger *slog.Logger) *TaskScheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskScheduler{
		storage:        storage,
		registry:       registry,
		logger:         logger,
		checkInterval:  DefaultCheckInterval,
		executingTasks: make(map[uuid.UUID]struct{}),
	}
}

// WithCheckInterval переопределяет интервал опроса.
func (s *TaskScheduler) WithCheckInterval(interval time.Duration) *TaskScheduler {
	if interval > 0 {
		s.checkInterval = interval
	}
	return s
}

// Submit проверяет наличие action и зарегистрированного под него executor'а,
// затем сохраняет task в хранилище. Возвращает ID сохранённого task.
func (s *TaskScheduler) Submit(ctx context.Context, task domain.Task) (uuid.UUID, error) {
	if task.Action == nil {
		return uuid.Nil, fmt.Errorf("%w: task %s", ErrActionMissing, task.ID)
	}

	if !s.registry.HasExecutorFor(task.Action.ActionType()) {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrActionNotFound, task.Action.ActionType())
	}

	if err := s.storage.SaveTask(ctx, task); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	telemetry.TasksSubmittedTotal.Inc()
	return task.ID, nil
}

// Start запускает фоновую горутину опроса. Повторный вызов на уже
// запущенном планировщике завершается ErrAlreadyRunning.
func (s *TaskScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pollLoop(ctx)
	}()

	s.logger.Info("scheduler started", "check_interval", s.checkInterval)
	return nil
}

// Stop переводит running в false. Уже запущенные worker-горутины
// дорабатывают до конца; новые активации не диспетчеризуются со
// следующего тика. Принудительной отмены нет.
func (s *TaskScheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	s.mu.Unlock()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
	return nil
}

// IsRunning сообщает текущее состояние running.
func (s *TaskScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// ShutdownOnSignal устанавливает обработчик SIGINT/SIGTERM, который
// останавливает планировщик при получении сигнала. Возвращает канал,
// закрываемый после завершения Stop, чтобы вызывающий мог дождаться
// полной остановки.
func (s *TaskScheduler) ShutdownOnSignal() <-chan struct{} {
	done := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)
		<-sigCh
		signal.Stop(sigCh)
		s.logger.Info("shutdown signal received, stopping scheduler")
		if err := s.Stop(); err != nil {
			s.logger.Error("scheduler stop failed during shutdown", "error", err)
		}
	}()

	return done
}

// pollLoop — фоновый цикл: на каждом тике читает готовые задачи и
// диспетчеризует по одному worker'у на задачу, ещё не находящуюся в
// исполнении.
func (s *TaskScheduler) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !s.IsRunning() {
			return
		}

		ready, err := s.storage.GetReadyTasks(ctx)
		if err != nil {
			s.logger.Error("failed to fetch ready tasks", "error", err)
			continue
		}

		// Воркеры получают ctx без привязки к отмене опроса: Stop
		// останавливает диспетчеризацию новых активаций, но уже запущенные
		// воркеры должны доработать до конца и сохранить результат — без
		// принудительной отмены (см. runWorker).
		workerCtx := context.WithoutCancel(ctx)

		for _, task := range ready {
			if !s.tryClaim(task.ID) {
				continue
			}

			s.wg.Add(1)
			go func(t domain.Task) {
				defer s.wg.Done()
				s.runWorker(workerCtx, t)
			}(task)
		}
	}
}

// tryClaim пытается занять task.ID в executingTasks. Возвращает false, если
// id уже присутствует (активация уже идёт).
func (s *TaskScheduler) tryClaim(id uuid.UUID) bool {
	s.executingMu.Lock()
	defer s.executingMu.Unlock()

	if _, inFlight := s.executingTasks[id]; inFlight {
		return false
	}
	s.executingTasks[id] = struct{}{}
	telemetry.TasksInFlight.Set(float64(len(s.executingTasks)))
	return true
}

// release освобождает id из executingTasks. Вызывается через defer в
// runWorker, так что id снимается на любом пути выхода — успех,
// исчерпание retry, или ошибка сохранения после них — в отличие от
// изначального движка, где исчерпание retry оставляло id занятым навсегда.
func (s *TaskScheduler) release(id uuid.UUID) {
	s.executingMu.Lock()
	defer s.executingMu.Unlock()
	delete(s.executingTasks, id)
	telemetry.TasksInFlight.Set(float64(len(s.executingTasks)))
}

// runWorker — состояние одной активации task: повторяет executor.Execute до
// успеха или исчерпания retry, с экспоненциальным backoff между попытками.
// ctx не отменяется остановкой планировщика (см. pollLoop) — executor.Execute
// и финальный storage.SaveTask всегда доводятся до конца без принудительной
// отмены.
func (s *TaskScheduler) runWorker(ctx context.Context, task domain.Task) {
	defer s.release(task.ID)

	scheduleKind := "once"
	if task.Schedule.IsRange() {
		scheduleKind = "range"
	}
	logger := telemetry.WithScheduleID(telemetry.WithTaskID(s.logger, task.ID.String()), scheduleKind)
	ctx = telemetry.WithLogger(ctx, logger)

	for {
		telemetry.TasksExecutedTotal.Inc()
		err := s.registry.Execute(ctx, task)
		if err == nil {
			telemetry.TasksSucceededTotal.Inc()
			logger.Info("task executed successfully")
			task.ResetRetryCount()
			now := time.Now().UTC()
			task.MarkCompleted(now)
			task.CalculateNextRun()

			if saveErr := s.storage.SaveTask(ctx, task); saveErr != nil {
				logger.Error("failed to persist completed task", "error", saveErr)
			}
			return
		}

		task.RetryCount++
		logger.Error("task execution failed", "retry_count", task.RetryCount, "error", err)

		if task.ShouldRetry() {
			telemetry.TasksRetriedTotal.Inc()
			// Backoff-пауза не отменяется остановкой планировщика: Stop
			// дожидается завершения всех worker-горутин через wg.Wait(),
			// так что пауза может продлить задержку выключения вплоть до
			// retry_delay * 2^(max_retries-1).
			time.Sleep(task.CalculateRetryDelay())
			continue
		}

		telemetry.TasksExhaustedTotal.Inc()
		logger.Error("max retries reached, giving up")
		now := time.Now().UTC()
		task.MarkCompleted(now)
		task.CalculateNextRun()
		task.ResetRetryCount()

		if saveErr := s.storage.SaveTask(ctx, task); saveErr != nil {
			logger.Error("failed to persist exhausted task", "error", saveErr)
		}
		return
	}
}
