// Package test provides shared helpers for the package test suites.
package test

import (
	"fmt"
	"strings"
	"sync"
)

// Logger is a capturing core.Logger implementation for use across test
// suites. It records every message with its level so tests can assert on
// log output.
type Logger struct {
	mu       sync.RWMutex
	messages []LogEntry
}

// LogEntry is a single captured log message.
type LogEntry struct {
	Level   string
	Message string
}

// NewLogger creates a new capturing test logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Criticalf(s string, v ...any) { l.log("CRITICAL", s, v...) }
func (l *Logger) Errorf(s string, v ...any)    { l.log("ERROR", s, v...) }
func (l *Logger) Warningf(s string, v ...any)  { l.log("WARN", s, v...) }
func (l *Logger) Noticef(s string, v ...any)   { l.log("NOTICE", s, v...) }
func (l *Logger) Debugf(s string, v ...any)    { l.log("DEBUG", s, v...) }

func (l *Logger) log(level, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	l.messages = append(l.messages, LogEntry{Level: level, Message: msg})
	l.mu.Unlock()
}

// Messages returns all captured messages.
func (l *Logger) Messages() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LogEntry, len(l.messages))
	copy(out, l.messages)
	return out
}

// HasMessage reports whether a message containing substr was logged.
func (l *Logger) HasMessage(substr string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.messages {
		if strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}

// HasError reports whether an error containing substr was logged.
func (l *Logger) HasError(substr string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.messages {
		if entry.Level == "ERROR" && strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}

// Clear drops all captured messages.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
}
