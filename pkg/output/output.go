// Copyright 2025 tls-monitoring Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "time"

// EventType defines the type of output event.
type EventType string

const (
	// EventInfo represents a general information message (always visible)
	EventInfo EventType = "info"

	// EventError represents an error message
	EventError EventType = "error"

	// EventWarning represents a warning message
	EventWarning EventType = "warning"

	// EventTable represents tabular data output
	EventTable EventType = "table"

	// EventDiag represents diagnostic information (only visible with -v/-vv)
	EventDiag EventType = "diag"
)

// Level defines the verbosity level for diagnostic messages.
type Level int

const (
	// LevelNormal is the default level (always shown)
	LevelNormal Level = 0

	// LevelVerbose is shown with -v flag
	LevelVerbose Level = 1

	// LevelDebug is shown with -vv flag
	LevelDebug Level = 2
)

// Event represents a single output event emitted by business logic.
type Event struct {
	// Type identifies the event category (info, error, table, diag)
	Type EventType

	// Level specifies verbosity level (only used for EventDiag)
	Level Level

	// Message is the primary text content
	Message string

	// Data contains structured data (e.g., table headers/rows)
	Data any

	// Metadata holds additional key-value pairs for diagnostic events
	Metadata map[string]any

	// Timestamp records when the event was created
	Timestamp time.Time
}

// Output is the primary interface for business logic to emit output events
// without knowing about the underlying rendering format (human-friendly,
// JSON lines, ...).
type Output interface {
	// Info emits a general information message (always visible).
	Info(message string)

	// Error emits an error message.
	Error(err error)

	// Warning emits a warning message.
	Warning(message string)

	// Table emits tabular data with headers and rows.
	Table(headers []string, rows [][]string)

	// Diag emits diagnostic information (only visible with -v/-vv).
	Diag(level Level, message string, metadata map[string]any)
}
