// Package gha writes the CI output artifact consumed by a GitHub
// Actions-style workflow: a single `alerts=<json>` line appended to the
// designated output file when a run raised alerts.
package gha

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sciclon2/tls-monitoring/pkg/check"
)

// EnvOutputFile is the environment variable naming the output file in a
// GitHub Actions job.
const EnvOutputFile = "GITHUB_OUTPUT"

// Sink appends workflow output lines to a file. A Sink with an empty path
// is inert, so callers outside CI need no special casing.
type Sink struct {
	Path string
}

// DefaultSink resolves the output file from the environment.
func DefaultSink() *Sink {
	return &Sink{Path: os.Getenv(EnvOutputFile)}
}

// alertRecord is the wire shape of one alerting result. Pointer fields keep
// days_remaining, expires_at and error as explicit nulls for ERROR results.
type alertRecord struct {
	Domain        string  `json:"domain"`
	Status        string  `json:"status"`
	DaysRemaining *int    `json:"days_remaining"`
	ExpiresAt     *string `json:"expires_at"`
	Error         *string `json:"error"`
}

// WriteAlerts appends `alerts=<json>` for a non-empty batch, one array
// element per alerting result in input order. Nil batches and inert sinks
// write nothing.
func (s *Sink) WriteAlerts(batch *check.AlertBatch) error {
	if s == nil || s.Path == "" || batch == nil || len(batch.Results) == 0 {
		return nil
	}

	records := make([]alertRecord, 0, len(batch.Results))
	for _, r := range batch.Results {
		rec := alertRecord{
			Domain:        r.Domain,
			Status:        string(r.Status),
			DaysRemaining: r.DaysRemaining,
		}
		if r.ExpiresAt != nil {
			formatted := r.ExpiresAt.Format(time.RFC3339)
			rec.ExpiresAt = &formatted
		}
		if r.Error != "" {
			message := r.Error
			rec.Error = &message
		}
		records = append(records, rec)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "alerts=%s\n", payload); err != nil {
		return fmt.Errorf("append alerts to %s: %w", s.Path, err)
	}
	return nil
}
