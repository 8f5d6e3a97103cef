package checkexec

import "errors"

var (
	// ErrNoTargets means the target specification was missing or empty.
	// It is the only fatal error class: it aborts the run before any
	// network activity.
	ErrNoTargets = errors.New("no targets to check (set check.domains or pass --domains)")

	// ErrInvalidThreshold means the alert threshold is not a positive
	// number of days.
	ErrInvalidThreshold = errors.New("alert threshold must be a positive number of days")

	// ErrAlertsRaised marks a run that completed but produced a non-empty
	// alert batch. It distinguishes "alerts raised" from "all healthy" at
	// the process boundary; both are non-crash outcomes.
	ErrAlertsRaised = errors.New("certificate alerts raised")
)
