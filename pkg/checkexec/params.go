package checkexec

import (
	"time"

	"github.com/sciclon2/tls-monitoring/pkg/check"
)

// Params defines the input required to initiate a check run.
type Params struct {
	Targets        []check.Target
	ThresholdDays  int
	Port           int
	ConnectTimeout time.Duration
	DecodeTimeout  time.Duration
	Concurrency    int
	Decoder        string
	OutputFormat   string
	OutputFile     string
}

// Result is the structured outcome of one run.
type Result struct {
	RunID     string
	StartTime string
	EndTime   string

	// Results holds one entry per target, in input order, regardless of
	// the order checks finished in.
	Results []check.Result

	// Batch is the alerting subset, nil when every certificate is
	// healthy against the threshold.
	Batch *check.AlertBatch
}
