package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shaiso/tasksched/internal/domain"
)

func TestSubmitTaskRequest_ToTask_Once(t *testing.T) {
	next := time.Now().UTC().Add(time.Hour)
	req := SubmitTaskRequest{
		Schedule: "once",
		NextRun:  &next,
		Action:   json.RawMessage(`{"type":"log","payload":{"message":"hi","level":"info"}}`),
	}

	task, err := req.ToTask()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Schedule.IsOnce() {
		t.Fatal("expected Once schedule")
	}
	if !task.NextRun.Equal(next) {
		t.Fatalf("expected NextRun %v, got %v", next, task.NextRun)
	}
}

func TestSubmitTaskRequest_ToTask_Once_MissingNextRun(t *testing.T) {
	req := SubmitTaskRequest{
		Schedule: "once",
		Action:   json.RawMessage(`{"type":"log","payload":{"message":"hi","level":"info"}}`),
	}

	if _, err := req.ToTask(); err == nil {
		t.Fatal("expected an error when next_run is missing for schedule=once")
	}
}

func TestSubmitTaskRequest_ToTask_Range(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(24 * time.Hour)
	req := SubmitTaskRequest{
		Schedule:           "range",
		Start:              &start,
		End:                &end,
		DelayBetweenRunsMs: int64((time.Hour).Milliseconds()),
		Action:             json.RawMessage(`{"type":"log","payload":{"message":"hi","level":"info"}}`),
	}

	task, err := req.ToTask()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Schedule.IsRange() {
		t.Fatal("expected Range schedule")
	}
	if task.Schedule.Step != time.Hour {
		t.Fatalf("expected step 1h, got %v", task.Schedule.Step)
	}
}

func TestSubmitTaskRequest_ToTask_UnknownScheduleKind(t *testing.T) {
	req := SubmitTaskRequest{
		Schedule: "weekly",
		Action:   json.RawMessage(`{"type":"log","payload":{"message":"hi","level":"info"}}`),
	}

	if _, err := req.ToTask(); err == nil {
		t.Fatal("expected an error for an unknown schedule kind")
	}
}

func TestSubmitTaskRequest_ToTask_InvalidAction(t *testing.T) {
	next := time.Now().UTC().Add(time.Hour)
	req := SubmitTaskRequest{
		Schedule: "once",
		NextRun:  &next,
		Action:   json.RawMessage(`{"type":"unknown_action","payload":{}}`),
	}

	if _, err := req.ToTask(); err == nil {
		t.Fatal("expected an error for an unrecognized action type")
	}
}

func TestTaskFromDomain_RoundTrip(t *testing.T) {
	task := domain.From(time.Now().UTC(), domain.LogAction{Message: "hi", Level: "info"})

	resp, err := TaskFromDomain(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != task.ID {
		t.Fatalf("expected ID %v, got %v", task.ID, resp.ID)
	}
	if resp.Schedule != "once" {
		t.Fatalf("expected schedule \"once\", got %q", resp.Schedule)
	}
}
