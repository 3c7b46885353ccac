package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandler_AddsModuleAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Config{
		ServiceInfo:   ServiceInfo{Name: "alarm-scheduler", Version: "test"},
		Environment:   EnvDev,
		DefaultModule: Module("default"),
		Writer:        &buf,
	}))

	ctx := WithRequestID(WithModule(context.Background(), Module("followup")), "req-1")
	logger.InfoContext(ctx, "hello", slog.String("alarm_id", "a1"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["module"] != "followup" {
		t.Errorf("module = %v, want followup", entry["module"])
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if entry["alarm_id"] != "a1" {
		t.Errorf("alarm_id = %v, want a1", entry["alarm_id"])
	}
	service, ok := entry["service"].(map[string]any)
	if !ok || service["name"] != "alarm-scheduler" {
		t.Errorf("service = %v, want name alarm-scheduler", entry["service"])
	}
}

func TestHandler_DefaultModule(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Config{DefaultModule: Module("alarm-scheduler"), Writer: &buf}))

	logger.Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["module"] != "alarm-scheduler" {
		t.Errorf("module = %v, want alarm-scheduler", entry["module"])
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := "5f0c6c3e-8f7a-4a43-9d0c-0b53d1a0c1de"
	if got := ValidateAndExtractRequestID(valid); got != valid {
		t.Errorf("ValidateAndExtractRequestID(%q) = %q, want unchanged", valid, got)
	}

	got := ValidateAndExtractRequestID("not-a-uuid")
	if got == "not-a-uuid" || got == "" {
		t.Errorf("ValidateAndExtractRequestID() = %q, want a fresh id", got)
	}
}
