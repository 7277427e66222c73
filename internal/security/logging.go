// Structured JSON logging for application and security events.
package security

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// LogLevel classifies a log entry.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelSecurity LogLevel = "SECURITY"
)

// SecurityEventType identifies the kind of security-relevant event.
type SecurityEventType string

const (
	EventLoginSuccess    SecurityEventType = "login_success"
	EventLoginFailure    SecurityEventType = "login_failure"
	EventAccountDisabled SecurityEventType = "account_disabled_login"
	EventUserRegister    SecurityEventType = "user_register"
	EventUserCreate      SecurityEventType = "user_create"
	EventUserUpdate      SecurityEventType = "user_update"
	EventUserDelete      SecurityEventType = "user_delete"
	EventUserRoleChange  SecurityEventType = "user_role_change"
	EventUserToggle      SecurityEventType = "user_enabled_change"
	EventSelfActionBlock SecurityEventType = "self_action_blocked"
	EventFileUpload      SecurityEventType = "file_upload"
)

// LogEntry is the JSON shape of every log line.
type LogEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Level     LogLevel          `json:"level"`
	Message   string            `json:"message"`
	Error     string            `json:"error,omitempty"`
	EventType SecurityEventType `json:"event_type,omitempty"`
	ActorID   *int64            `json:"actor_id,omitempty"`
	ActorName string            `json:"actor_name,omitempty"`
	IPAddress string            `json:"ip_address,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`

	// HTTP request fields
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	Status    int    `json:"status,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`

	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Logger writes one JSON object per line to its output.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing to stdout.
func NewLogger() *Logger {
	return &Logger{
		output: log.New(os.Stdout, "", 0),
	}
}

func (l *Logger) write(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()
	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to plain text rather than dropping the event.
		l.output.Printf(`{"level":"ERROR","message":"log marshal failed: %v"}`, err)
		return
	}
	l.output.Println(string(data))
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.write(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning message.
func (l *Logger) Warn(message string) {
	l.write(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error message with an optional underlying error.
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Critical logs a critical failure with an optional underlying error.
func (l *Logger) Critical(message string, err error) {
	entry := LogEntry{Level: LogLevelCritical, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// SecurityEvent logs a security-relevant event with actor context.
// actorID may be nil for unauthenticated events such as failed logins.
func (l *Logger) SecurityEvent(eventType SecurityEventType, actorID *int64, actorName, ipAddress, userAgent string, extra map[string]interface{}) {
	l.write(LogEntry{
		Level:     LogLevelSecurity,
		Message:   fmt.Sprintf("security event: %s", eventType),
		EventType: eventType,
		ActorID:   actorID,
		ActorName: actorName,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Extra:     extra,
	})
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64, ipAddress, userAgent string) {
	l.write(LogEntry{
		Level:     LogLevelInfo,
		Message:   fmt.Sprintf("%s %s -> %d (%dms)", method, path, status, latencyMS),
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})
}
