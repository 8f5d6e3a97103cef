package check

import "time"

// ShouldAlert applies the caller's alert threshold to one result.
//
// ERROR results and results without a day count always alert. Otherwise the
// comparison is strict: a result sitting exactly on the threshold does not
// alert.
func ShouldAlert(r Result, thresholdDays int) bool {
	if r.Status == StatusError {
		return true
	}
	if r.DaysRemaining == nil {
		return true
	}
	return *r.DaysRemaining < thresholdDays
}

// AlertBatch is the subset of a run's results that need attention. It is
// built once per run, after every check has finished, and consumed
// immediately; it is never persisted.
type AlertBatch struct {
	Results       []Result  `json:"alerts"`
	ThresholdDays int       `json:"threshold_days"`
	CheckedAt     time.Time `json:"checked_at"`
}

// BuildAlertBatch filters results through ShouldAlert, preserving input
// order. A run where nothing alerts is "all healthy" and yields nil rather
// than an empty batch.
func BuildAlertBatch(results []Result, thresholdDays int, now time.Time) *AlertBatch {
	var alerting []Result
	for _, r := range results {
		if ShouldAlert(r, thresholdDays) {
			alerting = append(alerting, r)
		}
	}
	if len(alerting) == 0 {
		return nil
	}
	return &AlertBatch{
		Results:       alerting,
		ThresholdDays: thresholdDays,
		CheckedAt:     now,
	}
}
