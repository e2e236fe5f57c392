package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/tasksched/internal/domain"
	"github.com/shaiso/tasksched/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestTaskScheduler_Submit_RejectsMissingAction(t *testing.T) {
	sched := New(storage.NewMemory(), NewRegistry(), testLogger())
	task := domain.From(time.Now().UTC(), nil)

	if _, err := sched.Submit(context.Background(), task); err == nil {
		t.Fatal("expected an error for a task with no action")
	}
}

func TestTaskScheduler_Submit_RejectsUnknownActionType(t *testing.T) {
	sched := New(storage.NewMemory(), NewRegistry(), testLogger())
	task := domain.From(time.Now().UTC(), domain.LogAction{Message: "x", Level: "info"})

	if _, err := sched.Submit(context.Background(), task); err == nil {
		t.Fatal("expected an error when no executor supports the action type")
	}
}

func TestTaskScheduler_OnceActivatesImmediately(t *testing.T) {
	store := storage.NewMemory()
	registry := NewRegistry()
	exec := &fakeExecutor{types: []domain.ActionType{domain.ActionTypeLog}}
	registry.Register(exec)

	sched := New(store, registry, testLogger()).WithCheckInterval(10 * time.Millisecond)

	task := domain.From(time.Now().UTC().Add(-time.Second), domain.LogAction{Message: "x", Level: "info"})
	id, err := sched.Submit(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Stop()

	waitFor(t, time.Second, func() bool { return exec.callCount() == 1 })

	stored, found, err := store.GetTask(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("expected stored task, found=%v err=%v", found, err)
	}
	if stored.Enabled {
		t.Fatal("expected Once task to be disabled after its single activation")
	}
	if stored.LastRun == nil {
		t.Fatal("expected LastRun to be set after activation")
	}
}

func TestTaskScheduler_RetryThenSucceed(t *testing.T) {
	store := storage.NewMemory()
	registry := NewRegistry()
	exec := &fakeExecutor{types: []domain.ActionType{domain.ActionTypeLog}, failAt: 2}
	registry.Register(exec)

	sched := New(store, registry, testLogger()).WithCheckInterval(10 * time.Millisecond)

	task := domain.From(time.Now().UTC().Add(-time.Second), domain.LogAction{Message: "x", Level: "info"}).
		WithRetryDelay(5 * time.Millisecond).WithMaxRetries(5)
	id, err := sched.Submit(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Stop()

	waitFor(t, time.Second, func() bool { return exec.callCount() == 3 })

	stored, found, err := store.GetTask(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("expected stored task, found=%v err=%v", found, err)
	}
	if stored.RetryCount != 0 {
		t.Fatalf("expected retry count reset to 0 after success, got %d", stored.RetryCount)
	}
}

func TestTaskScheduler_RetryExhaustion_ReleasesExecutingSet(t *testing.T) {
	store := storage.NewMemory()
	registry := NewRegistry()
	exec := &fakeExecutor{types: []domain.ActionType{domain.ActionTypeLog}, failAt: 100}
	registry.Register(exec)

	sched := New(store, registry, testLogger()).WithCheckInterval(10 * time.Millisecond)

	task := domain.From(time.Now().UTC().Add(-time.Second), domain.LogAction{Message: "x", Level: "info"}).
		WithRetryDelay(2 * time.Millisecond).WithMaxRetries(2)
	id, err := sched.Submit(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Stop()

	// max_retries=2 means attempts at retry_count 0 and 1 both fail, then
	// the task is exhausted: 2 executor invocations total.
	waitFor(t, time.Second, func() bool { return exec.callCount() == 2 })

	stored, found, err := store.GetTask(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("expected stored task, found=%v err=%v", found, err)
	}
	if stored.Enabled {
		t.Fatal("expected Once task to be disabled after retry exhaustion")
	}

	// The executing-set must release the id even on the exhaustion path,
	// or this task id would be starved forever on any future resubmission.
	waitFor(t, time.Second, func() bool { return !schedulerIsExecuting(sched, id) })
}

func schedulerIsExecuting(s *TaskScheduler, id uuid.UUID) bool {
	s.executingMu.RLock()
	defer s.executingMu.RUnlock()
	_, ok := s.executingTasks[id]
	return ok
}

func TestTaskScheduler_RangeAdvancesNextRun(t *testing.T) {
	store := storage.NewMemory()
	registry := NewRegistry()
	exec := &fakeExecutor{types: []domain.ActionType{domain.ActionTypeLog}}
	registry.Register(exec)

	sched := New(store, registry, testLogger()).WithCheckInterval(10 * time.Millisecond)

	now := time.Now().UTC()
	start := now.Add(-time.Second)
	end := now.Add(time.Hour)
	task := domain.FromRange(start, end, domain.LogAction{Message: "x", Level: "info"}).
		WithDelayBetweenRuns(time.Minute)
	id, err := sched.Submit(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Stop()

	waitFor(t, time.Second, func() bool { return exec.callCount() == 1 })

	stored, found, err := store.GetTask(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("expected stored task, found=%v err=%v", found, err)
	}
	if !stored.Enabled {
		t.Fatal("expected Range task to remain enabled before its end")
	}
	expectedNext := start.Add(time.Minute)
	if !stored.NextRun.Equal(expectedNext) {
		t.Fatalf("expected NextRun %v, got %v", expectedNext, stored.NextRun)
	}
}

// slowExecutor blocks until released, so the poll loop's next tick still
// observes the task as "ready" while it is mid-execution.
type slowExecutor struct {
	types   []domain.ActionType
	calls   int32
	release chan struct{}
}

func (s *slowExecutor) SupportedActions() []domain.ActionType { return s.types }

func (s *slowExecutor) Execute(ctx context.Context, task domain.Task, action domain.Action) error {
	atomic.AddInt32(&s.calls, 1)
	<-s.release
	return nil
}

func (s *slowExecutor) callCount() int32 { return atomic.LoadInt32(&s.calls) }

func TestTaskScheduler_NoDoubleDispatch(t *testing.T) {
	store := storage.NewMemory()
	registry := NewRegistry()
	exec := &slowExecutor{types: []domain.ActionType{domain.ActionTypeLog}, release: make(chan struct{})}
	registry.Register(exec)

	sched := New(store, registry, testLogger()).WithCheckInterval(10 * time.Millisecond)

	task := domain.From(time.Now().UTC().Add(-time.Second), domain.LogAction{Message: "x", Level: "info"})
	if _, err := sched.Submit(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		close(exec.release)
		sched.Stop()
	}()

	// Let several poll ticks elapse while the single in-flight execution
	// is still blocked on exec.release.
	time.Sleep(100 * time.Millisecond)

	if n := exec.callCount(); n != 1 {
		t.Fatalf("expected exactly one dispatch while the task is in flight, got %d", n)
	}
}

func TestTaskScheduler_StartTwice(t *testing.T) {
	sched := New(storage.NewMemory(), NewRegistry(), testLogger())
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Stop()

	if err := sched.Start(context.Background()); err == nil {
		t.Fatal("expected ErrAlreadyRunning on second Start")
	}
}

func TestTaskScheduler_StopWhenNotRunning(t *testing.T) {
	sched := New(storage.NewMemory(), NewRegistry(), testLogger())
	if err := sched.Stop(); err == nil {
		t.Fatal("expected ErrNotRunning when Stop is called before Start")
	}
}
