package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestInitLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig("info", "json", "test-service", "1.0.0", "test", false)
	InitLoggerWithWriter(config, &buf)

	// Log a test message
	Info("test message", "key", "value", "number", 42)

	// Parse JSON output
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	// Verify base attributes
	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}

	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
	}

	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}

	// Verify message
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}

	// Verify level
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", logEntry["level"])
	}

	// Verify custom attributes
	if logEntry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", logEntry["key"])
	}

	if logEntry["number"] != float64(42) {
		t.Errorf("Expected number=42, got %v", logEntry["number"])
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig("warn", "json", "test-service", "dev", "test", false)
	InitLoggerWithWriter(config, &buf)

	Debug("debug message")
	Info("info message")

	if buf.Len() != 0 {
		t.Errorf("Expected debug/info to be filtered at warn level, got: %s", buf.String())
	}

	Warn("warn message")
	if buf.Len() == 0 {
		t.Error("Expected warn message to be logged")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	if id == "" {
		t.Fatal("Expected non-empty request ID")
	}

	ctx := WithRequestID(context.Background(), id)
	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected request ID in context")
	}
	if got != id {
		t.Errorf("Expected request ID %q, got %q", id, got)
	}

	// A bare context has no request ID
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("Expected no request ID in empty context")
	}
}

func TestFromContextIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig("info", "json", "test-service", "dev", "test", false)
	InitLoggerWithWriter(config, &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	FromContext(ctx).Info("scoped message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["request_id"] != "req-123" {
		t.Errorf("Expected request_id=req-123, got %v", logEntry["request_id"])
	}
}
