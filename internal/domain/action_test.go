package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalUnmarshalAction_Log(t *testing.T) {
	action := LogAction{Message: "hello", Level: "warn"}

	data, err := MarshalAction(action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wire struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unexpected error decoding wire envelope: %v", err)
	}
	if wire.Type != string(ActionTypeLog) {
		t.Fatalf("expected type %q, got %q", ActionTypeLog, wire.Type)
	}

	decoded, err := UnmarshalAction(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := decoded.(LogAction)
	if !ok {
		t.Fatalf("expected LogAction, got %T", decoded)
	}
	if got != action {
		t.Fatalf("expected %+v, got %+v", action, got)
	}
}

func TestMarshalUnmarshalAction_SendBotMessage(t *testing.T) {
	action := SendBotMessageAction{ChatID: 42, Message: "ping"}

	data, err := MarshalAction(action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := UnmarshalAction(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := decoded.(SendBotMessageAction)
	if !ok {
		t.Fatalf("expected SendBotMessageAction, got %T", decoded)
	}
	if got != action {
		t.Fatalf("expected %+v, got %+v", action, got)
	}
}

func TestMarshalAction_NilAction(t *testing.T) {
	if _, err := MarshalAction(nil); !errors.Is(err, ErrActionEncoding) {
		t.Fatalf("expected ErrActionEncoding, got %v", err)
	}
}

func TestUnmarshalAction_UnknownType(t *testing.T) {
	data := []byte(`{"type":"reboot_cluster","payload":{}}`)
	if _, err := UnmarshalAction(data); !errors.Is(err, ErrUnknownActionType) {
		t.Fatalf("expected ErrUnknownActionType, got %v", err)
	}
}

func TestUnmarshalAction_InvalidEnvelope(t *testing.T) {
	if _, err := UnmarshalAction([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed envelope")
	}
}
