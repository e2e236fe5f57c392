package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/tasksched/internal/domain"
)

func TestMemory_SaveAndGetTask(t *testing.T) {
	m := NewMemory()
	task := domain.From(time.Now().UTC(), domain.LogAction{Message: "x", Level: "info"})

	require.NoError(t, m.SaveTask(context.Background(), task))

	got, found, err := m.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, task.ID, got.ID)
}

func TestMemory_GetTask_NotFound(t *testing.T) {
	m := NewMemory()

	_, found, err := m.GetTask(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemory_DeleteTask(t *testing.T) {
	m := NewMemory()
	task := domain.From(time.Now().UTC(), domain.LogAction{})
	require.NoError(t, m.SaveTask(context.Background(), task))

	require.NoError(t, m.DeleteTask(context.Background(), task.ID))

	_, found, err := m.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemory_DeleteTask_MissingIsNotAnError(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.DeleteTask(context.Background(), uuid.New()))
}

func TestMemory_GetReadyTasks_FiltersDisabledAndFuture(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	ready := domain.From(now.Add(-time.Minute), domain.LogAction{})
	future := domain.From(now.Add(time.Hour), domain.LogAction{})
	disabled := domain.From(now.Add(-time.Minute), domain.LogAction{})
	disabled.Enabled = false

	require.NoError(t, m.SaveTask(ctx, ready))
	require.NoError(t, m.SaveTask(ctx, future))
	require.NoError(t, m.SaveTask(ctx, disabled))

	got, err := m.GetReadyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, ready.ID, got[0].ID)
}

func TestMemory_GetAllTasks_ReturnsSnapshot(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a := domain.From(time.Now().UTC(), domain.LogAction{})
	b := domain.From(time.Now().UTC(), domain.LogAction{})
	require.NoError(t, m.SaveTask(ctx, a))
	require.NoError(t, m.SaveTask(ctx, b))

	all, err := m.GetAllTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	task := domain.From(time.Now().UTC().Add(-time.Minute), domain.LogAction{})
	require.NoError(t, m.SaveTask(ctx, task))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = m.GetTask(ctx, task.ID)
		}()
		go func() {
			defer wg.Done()
			updated := task
			updated.RetryCount++
			_ = m.SaveTask(ctx, updated)
		}()
	}
	wg.Wait()

	got, found, err := m.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, task.ID, got.ID)
}
