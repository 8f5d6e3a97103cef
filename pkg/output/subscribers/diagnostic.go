// Copyright 2025 tls-monitoring Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sciclon2/tls-monitoring/pkg/output"
)

// DiagnosticSubscriber renders diagnostic events up to a maximum verbosity
// level. It is the only subscriber that handles EventDiag.
type DiagnosticSubscriber struct {
	writer   io.Writer
	maxLevel output.Level
}

// NewDiagnosticSubscriber creates a subscriber showing diagnostics up to
// maxLevel (LevelNormal hides everything, LevelVerbose = -v, LevelDebug = -vv).
func NewDiagnosticSubscriber(writer io.Writer, maxLevel output.Level) *DiagnosticSubscriber {
	return &DiagnosticSubscriber{writer: writer, maxLevel: maxLevel}
}

// Name returns the subscriber identifier.
func (s *DiagnosticSubscriber) Name() string {
	return "diagnostic"
}

// ShouldHandle accepts diagnostic events within the configured verbosity.
func (s *DiagnosticSubscriber) ShouldHandle(event output.Event) bool {
	return event.Type == output.EventDiag && event.Level <= s.maxLevel && s.maxLevel > output.LevelNormal
}

// Handle renders one diagnostic line, metadata as sorted key=value pairs.
func (s *DiagnosticSubscriber) Handle(event output.Event) {
	line := "[diag] " + event.Message
	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, event.Metadata[k]))
		}
		line += " " + strings.Join(pairs, " ")
	}
	fmt.Fprintln(s.writer, line)
}
