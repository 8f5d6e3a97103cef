// Copyright 2025 tls-monitoring Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sciclon2/tls-monitoring/pkg/output"
)

// JSONFormatter emits structured output as JSON Lines (one object per line),
// used when the output format is "json".
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSONFormatter subscriber.
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	return &JSONFormatter{encoder: json.NewEncoder(writer)}
}

// Name returns the subscriber identifier.
func (s *JSONFormatter) Name() string {
	return "json-formatter"
}

// ShouldHandle decides if this subscriber cares about the event.
// JSONFormatter handles everything EXCEPT diagnostic events.
func (s *JSONFormatter) ShouldHandle(event output.Event) bool {
	return event.Type != output.EventDiag
}

// Handle processes an output event and renders it as one JSON line.
func (s *JSONFormatter) Handle(event output.Event) {
	jsonEvent := map[string]any{
		"type":      event.Type,
		"timestamp": event.Timestamp.Format(time.RFC3339),
	}
	if event.Message != "" {
		jsonEvent["message"] = event.Message
	}
	if event.Data != nil {
		jsonEvent["data"] = event.Data
	}

	_ = s.encoder.Encode(jsonEvent)
}
