package logger

import (
	"context"
	"log/slog"
)

// Logger is the global logger instance
var Logger *slog.Logger

// ContextKey is used for context values
type ContextKey string

const (
	// ScanIDKey is the context key for the scan identifier
	ScanIDKey ContextKey = "scan_id"
	// TableKey is the context key for the foreign table name
	TableKey ContextKey = "table"
	// RequestIDKey is the context key for request ID
	RequestIDKey ContextKey = "request_id"
)

func init() {
	config := LoadConfig()
	Logger = NewLogger(config)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	Logger.Debug(msg, appendContextArgs(ctx, args...)...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// InfoContext logs an info message with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Logger.Info(msg, appendContextArgs(ctx, args...)...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// ErrorContext logs an error message with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Logger.Error(msg, appendContextArgs(ctx, args...)...)
}

// With returns a new Logger that includes the given attributes in each output operation
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// WithScan adds scan identification to the context for logging
func WithScan(ctx context.Context, scanID, table string) context.Context {
	ctx = context.WithValue(ctx, ScanIDKey, scanID)
	return context.WithValue(ctx, TableKey, table)
}

// appendContextArgs extracts context values and appends them to the args
func appendContextArgs(ctx context.Context, args ...any) []any {
	if ctx == nil {
		return args
	}

	if scanID, ok := ctx.Value(ScanIDKey).(string); ok {
		args = append(args, "scan_id", scanID)
	}

	if table, ok := ctx.Value(TableKey).(string); ok {
		args = append(args, "table", table)
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		args = append(args, "request_id", requestID)
	}

	return args
}
