// Copyright 2025 tls-monitoring Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/sciclon2/tls-monitoring/pkg/output"
)

// Lipgloss styles for terminal output
var (
	// Info style - normal messages
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	// Error style - critical errors with icon
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")). // Red
			Bold(true)

	// Warning style - warnings with icon
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")). // Yellow
			Bold(true)

	// Table header style - bold headers with border
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")). // Blue
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				Padding(0, 1)

	// Per-status cell styles for certificate results
	statusStyles = map[string]lipgloss.Style{
		"OK":       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"CRITICAL": lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		"EXPIRED":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"ERROR":    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

// HumanFormatter renders human-friendly output (tables, colors, summaries).
// Used when the output format is "text".
type HumanFormatter struct {
	stdout       io.Writer
	stderr       io.Writer
	colorEnabled bool
}

// NewHumanFormatter creates a new HumanFormatter subscriber.
func NewHumanFormatter(stdout, stderr io.Writer, colorEnabled bool) *HumanFormatter {
	return &HumanFormatter{
		stdout:       stdout,
		stderr:       stderr,
		colorEnabled: colorEnabled,
	}
}

// Name returns the subscriber identifier.
func (s *HumanFormatter) Name() string {
	return "human-formatter"
}

// ShouldHandle decides if this subscriber cares about the event.
// HumanFormatter handles everything EXCEPT diagnostic events, which belong
// to the DiagnosticSubscriber.
func (s *HumanFormatter) ShouldHandle(event output.Event) bool {
	return event.Type != output.EventDiag
}

// Handle processes an output event and renders it in human-friendly format.
func (s *HumanFormatter) Handle(event output.Event) {
	switch event.Type {
	case output.EventInfo:
		s.printInfo(event.Message)

	case output.EventError:
		s.printError(event.Message)

	case output.EventWarning:
		s.printWarning(event.Message)

	case output.EventTable:
		if data, ok := event.Data.(map[string]any); ok {
			headers, _ := data["headers"].([]string)
			rows, _ := data["rows"].([][]string)
			s.printTable(headers, rows)
		}
	}
}

func (s *HumanFormatter) printInfo(message string) {
	if s.colorEnabled {
		message = infoStyle.Render(message)
	}
	fmt.Fprintln(s.stdout, message)
}

func (s *HumanFormatter) printError(message string) {
	line := "✗ " + message
	if s.colorEnabled {
		line = errorStyle.Render(line)
	}
	fmt.Fprintln(s.stderr, line)
}

func (s *HumanFormatter) printWarning(message string) {
	line := "⚠ " + message
	if s.colorEnabled {
		line = warningStyle.Render(line)
	}
	fmt.Fprintln(s.stderr, line)
}

func (s *HumanFormatter) printTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	w := tabwriter.NewWriter(s.stdout, 0, 4, 2, ' ', 0)

	headerLine := strings.Join(headers, "\t")
	if s.colorEnabled {
		styled := make([]string, len(headers))
		for i, h := range headers {
			styled[i] = tableHeaderStyle.UnsetBorderStyle().UnsetPadding().Render(h)
		}
		headerLine = strings.Join(styled, "\t")
	}
	fmt.Fprintln(w, headerLine)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = s.styleCell(cell)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

// styleCell colors well-known status values, leaving other cells alone.
func (s *HumanFormatter) styleCell(cell string) string {
	if !s.colorEnabled {
		return cell
	}
	if style, ok := statusStyles[cell]; ok {
		return style.Render(cell)
	}
	return cell
}
