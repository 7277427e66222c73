// Package security provides tests for the structured JSON logger.
package security

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"testing"
)

// TestLogger_JSONFormat tests that logs are output in valid JSON format.
func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	logger.Info("Test message")

	// Should be valid JSON
	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Errorf("Log output is not valid JSON: %v", err)
	}

	if entry.Message != "Test message" {
		t.Errorf("Expected message 'Test message', got %q", entry.Message)
	}

	if entry.Level != LogLevelInfo {
		t.Errorf("Expected level INFO, got %q", entry.Level)
	}

	if entry.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

// TestLogger_Levels tests different log levels.
func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(*Logger, string)
		expected LogLevel
	}{
		{"Info", func(l *Logger, m string) { l.Info(m) }, LogLevelInfo},
		{"Warn", func(l *Logger, m string) { l.Warn(m) }, LogLevelWarning},
		{"Error", func(l *Logger, m string) { l.Error(m, nil) }, LogLevelError},
		{"Critical", func(l *Logger, m string) { l.Critical(m, nil) }, LogLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger()
			logger.output = log.New(&buf, "", 0)

			tt.logFunc(logger, "test message")

			var entry LogEntry
			json.Unmarshal(buf.Bytes(), &entry)

			if entry.Level != tt.expected {
				t.Errorf("Expected level %q, got %q", tt.expected, entry.Level)
			}
		})
	}
}

// TestLogger_SecurityEvent tests security event logging with actor context.
func TestLogger_SecurityEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	actorID := int64(123)
	extra := map[string]interface{}{
		"target_user_id": 456,
		"role":           "ADMIN",
	}

	logger.SecurityEvent(
		EventUserRoleChange,
		&actorID,
		"admin",
		"192.168.1.100",
		"Mozilla/5.0",
		extra,
	)

	var entry LogEntry
	json.Unmarshal(buf.Bytes(), &entry)

	if entry.Level != LogLevelSecurity {
		t.Errorf("Expected SECURITY level, got %q", entry.Level)
	}

	if entry.EventType != EventUserRoleChange {
		t.Errorf("Expected event type %q, got %q", EventUserRoleChange, entry.EventType)
	}

	if entry.ActorID == nil || *entry.ActorID != 123 {
		t.Errorf("Expected actor_id 123, got %v", entry.ActorID)
	}

	if entry.ActorName != "admin" {
		t.Errorf("Expected actor_name admin, got %q", entry.ActorName)
	}

	if entry.IPAddress != "192.168.1.100" {
		t.Errorf("Expected ip_address 192.168.1.100, got %q", entry.IPAddress)
	}

	if entry.UserAgent != "Mozilla/5.0" {
		t.Errorf("Expected user_agent Mozilla/5.0, got %q", entry.UserAgent)
	}

	if entry.Extra["target_user_id"] != float64(456) { // JSON unmarshals numbers as float64
		t.Errorf("Expected extra.target_user_id 456, got %v", entry.Extra["target_user_id"])
	}
}

// TestLogger_HTTPRequest tests HTTP request logging.
func TestLogger_HTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	logger.HTTPRequest(
		"POST",
		"/api/inspections",
		201,
		245,
		"192.168.1.100",
		"Mozilla/5.0",
	)

	var entry LogEntry
	json.Unmarshal(buf.Bytes(), &entry)

	if entry.Method != "POST" {
		t.Errorf("Expected method POST, got %q", entry.Method)
	}

	if entry.Path != "/api/inspections" {
		t.Errorf("Expected path /api/inspections, got %q", entry.Path)
	}

	if entry.Status != 201 {
		t.Errorf("Expected status 201, got %d", entry.Status)
	}

	if entry.LatencyMS != 245 {
		t.Errorf("Expected latency 245ms, got %d", entry.LatencyMS)
	}

	if !strings.Contains(entry.Message, "POST") {
		t.Error("Message should contain method")
	}

	if !strings.Contains(entry.Message, "201") {
		t.Error("Message should contain status")
	}
}

// TestLogger_ErrorWithException tests error logging with an underlying error.
func TestLogger_ErrorWithException(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	testErr := &customError{"database connection failed"}
	logger.Error("Failed to connect", testErr)

	var entry LogEntry
	json.Unmarshal(buf.Bytes(), &entry)

	if entry.Error != "database connection failed" {
		t.Errorf("Expected error message, got %q", entry.Error)
	}
}

// customError for testing error logging.
type customError struct {
	message string
}

func (e *customError) Error() string {
	return e.message
}

// BenchmarkLogger_Info benchmarks info logging performance.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLogger()
	logger.output = log.New(&bytes.Buffer{}, "", 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("Benchmark test message")
	}
}
