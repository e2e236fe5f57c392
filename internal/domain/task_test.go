package domain

import (
	"testing"
	"time"
)

func TestFrom_DefaultsAndActivation(t *testing.T) {
	action := LogAction{Message: "hi", Level: "info"}
	next := time.Now().UTC().Add(time.Hour)

	task := From(next, action)

	if !task.Schedule.IsOnce() {
		t.Fatal("expected Once schedule")
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Fatalf("expected default max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
	if task.RetryDelay != DefaultRetryDelay {
		t.Fatalf("expected default retry delay %v, got %v", DefaultRetryDelay, task.RetryDelay)
	}
	if !task.Enabled {
		t.Fatal("expected new task to be enabled")
	}
	if task.ID.String() == "" {
		t.Fatal("expected a generated ID")
	}
}

func TestFromRange_NextRunStartsAtRangeStart(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(3 * time.Hour)
	action := LogAction{Message: "hi", Level: "info"}

	task := FromRange(start, end, action)

	if !task.NextRun.Equal(start) {
		t.Fatalf("expected NextRun == start, got %v != %v", task.NextRun, start)
	}
}

func TestCalculateNextRun_Once_Disables(t *testing.T) {
	task := From(time.Now().UTC(), LogAction{})
	task.CalculateNextRun()

	if task.Enabled {
		t.Fatal("expected Once task to be disabled after its single activation")
	}
}

func TestCalculateNextRun_Range_Advances(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(3 * time.Hour)
	task := FromRange(start, end, LogAction{}).WithDelayBetweenRuns(time.Hour)

	task.CalculateNextRun()

	if !task.Enabled {
		t.Fatal("expected task to remain enabled within range")
	}
	expected := start.Add(time.Hour)
	if !task.NextRun.Equal(expected) {
		t.Fatalf("expected NextRun %v, got %v", expected, task.NextRun)
	}
}

func TestCalculateNextRun_Range_DisablesPastEnd(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(90 * time.Minute)
	task := FromRange(start, end, LogAction{}).WithDelayBetweenRuns(time.Hour)

	task.CalculateNextRun() // NextRun = start + 1h, still within end
	task.CalculateNextRun() // candidate = start + 2h, past end

	if task.Enabled {
		t.Fatal("expected task to disable once the next candidate exceeds range end")
	}
}

func TestCalculateRetryDelay_Exponential(t *testing.T) {
	task := From(time.Now().UTC(), LogAction{}).WithRetryDelay(100 * time.Millisecond)

	cases := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
	}

	for _, c := range cases {
		task.RetryCount = c.retryCount
		if got := task.CalculateRetryDelay(); got != c.want {
			t.Errorf("retry_count=%d: expected %v, got %v", c.retryCount, c.want, got)
		}
	}
}

func TestShouldRetry(t *testing.T) {
	task := From(time.Now().UTC(), LogAction{}).WithMaxRetries(2)

	task.RetryCount = 0
	if !task.ShouldRetry() {
		t.Fatal("expected ShouldRetry() == true below max_retries")
	}

	task.RetryCount = 2
	if task.ShouldRetry() {
		t.Fatal("expected ShouldRetry() == false at max_retries")
	}
}

func TestResetRetryCount(t *testing.T) {
	task := From(time.Now().UTC(), LogAction{})
	task.RetryCount = 5
	task.ResetRetryCount()

	if task.RetryCount != 0 {
		t.Fatalf("expected RetryCount reset to 0, got %d", task.RetryCount)
	}
}

func TestMarkCompleted(t *testing.T) {
	task := From(time.Now().UTC(), LogAction{})
	now := time.Now().UTC()
	task.MarkCompleted(now)

	if task.LastRun == nil || !task.LastRun.Equal(now) {
		t.Fatalf("expected LastRun == %v, got %v", now, task.LastRun)
	}
}
