// Package adapter defines the event-bus adapter boundary for run
// completion notifications.
//
// Adapters publish program run outcomes to downstream systems. The engine
// owns adapter lifecycle; callers provide configuration only.
package adapter

import "context"

// ProgramRunCompletedEvent is the payload published when a program run
// finishes, successfully or not.
type ProgramRunCompletedEvent struct {
	EventType       string `json:"event_type"` // always "program_run_completed"
	Program         string `json:"program"`
	Challenge       string `json:"challenge"`
	RunNumber       int64  `json:"run_number"`
	Level           string `json:"level"`
	Outcome         string `json:"outcome"` // success, analyzer_error
	ErrorMessage    string `json:"error_message,omitempty"`
	AnalyzersRun    int64  `json:"analyzers_run"`
	AnalyzersFailed int64  `json:"analyzers_failed"`
	Timestamp       string `json:"timestamp"` // ISO 8601
	DurationMs      int64  `json:"duration_ms"`
}

// Adapter publishes run completion events to a downstream system.
// Implementations must be safe for single-use per run.
type Adapter interface {
	// Publish sends a run completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *ProgramRunCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}
