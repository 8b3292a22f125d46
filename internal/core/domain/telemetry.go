package domain

import "strings"

// VertexStatus represents the lifecycle state of a unit of work (a compiler
// job) in the progress display.
type VertexStatus string

const (
	// VertexStatusPending indicates the job is waiting to be scheduled.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusRunning indicates the job's compiler process is executing.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted indicates the job finished successfully.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed indicates the job's compiler process failed.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached indicates the job was skipped because every file in
	// its partition was fresh in the cache.
	VertexStatusCached VertexStatus = "cached"
)

// LogLevel represents the severity of a log message, mirroring the standard
// slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warnings.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents errors.
	LogLevelError LogLevel = 8
)

// String returns the level's upper-case name.
func (l LogLevel) String() string {
	switch {
	case l <= LogLevelDebug:
		return "DEBUG"
	case l < LogLevelWarn:
		return "INFO"
	case l < LogLevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLogLevel maps a case-insensitive level name to a LogLevel, defaulting
// to info for unknown names.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
