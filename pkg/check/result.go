package check

import "time"

// Status is the fixed severity classification of a check result. It is
// independent of the caller-supplied alert threshold.
type Status string

const (
	StatusOK       Status = "OK"
	StatusCritical Status = "CRITICAL"
	StatusExpired  Status = "EXPIRED"
	StatusError    Status = "ERROR"
)

// Result is the outcome of checking one target. It is immutable once
// produced. ExpiresAt and DaysRemaining are set together, and only when
// Status != StatusError; Error is set only when Status == StatusError.
type Result struct {
	Domain        string     `json:"domain"`
	Runbook       string     `json:"runbook,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at"`
	DaysRemaining *int       `json:"days_remaining"`
	Status        Status     `json:"status"`
	Error         string     `json:"error,omitempty"`
}

// ErrorResult builds the terminal ERROR result for a target.
func ErrorResult(t Target, err error) Result {
	return Result{
		Domain:  t.Host,
		Runbook: t.Runbook,
		Status:  StatusError,
		Error:   err.Error(),
	}
}
