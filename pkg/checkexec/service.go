// Package checkexec orchestrates a full check run: a bounded worker pool
// over the target list, a full join, and the threshold aggregation that
// produces the alert batch.
package checkexec

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sciclon2/tls-monitoring/pkg/check"
	"github.com/sciclon2/tls-monitoring/pkg/x509dec"
)

// DefaultConcurrency is the worker pool size when none is configured.
// Checks are independent, so 1 degrades cleanly to sequential execution.
const DefaultConcurrency = 4

// targetChecker is the per-target pipeline as the service sees it.
type targetChecker interface {
	Check(ctx context.Context, t check.Target) check.Result
}

// ProgressSink receives per-target progress notifications.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ProgressEvent describes one step of a run.
type ProgressEvent struct {
	Phase     string
	Target    string
	Status    string
	Message   string
	Timestamp time.Time
}

// Service runs the check pipeline over a target list.
type Service struct {
	checkerFactory func(Params) (targetChecker, error)
	progressSink   ProgressSink
	now            func() time.Time
}

// NewService builds a Service with default dependencies.
func NewService() *Service {
	return &Service{
		checkerFactory: func(params Params) (targetChecker, error) {
			decoder, err := x509dec.New(params.Decoder)
			if err != nil {
				return nil, err
			}
			return check.NewChecker(check.CheckerConfig{
				Port:           params.Port,
				ConnectTimeout: params.ConnectTimeout,
				DecodeTimeout:  params.DecodeTimeout,
			}, decoder), nil
		},
		now: time.Now,
	}
}

// WithProgressSink attaches a sink to receive progress notifications.
func (s *Service) WithProgressSink(sink ProgressSink) *Service {
	s.progressSink = sink
	return s
}

// WithCheckerFactory overrides checker construction (useful for tests).
func (s *Service) WithCheckerFactory(factory func(Params) (targetChecker, error)) *Service {
	s.checkerFactory = factory
	return s
}

// Run executes every per-target check and aggregates the alert batch.
//
// Targets are independent: each owns its own session and decoder
// invocation, one target's failure or timeout never affects another's
// check, and every target yields exactly one result. Aggregation only
// happens after the pool has fully joined.
func (s *Service) Run(ctx context.Context, params Params) (*Result, error) {
	if len(params.Targets) == 0 {
		return nil, ErrNoTargets
	}
	if params.ThresholdDays <= 0 {
		return nil, ErrInvalidThreshold
	}

	checker, err := s.checkerFactory(params)
	if err != nil {
		return nil, fmt.Errorf("init checker: %w", err)
	}

	runID := uuid.New().String()
	startTime := s.now()
	logger := log.With().Str("component", "checkexec").Str("run_id", runID).Logger()
	logger.Info().
		Int("targets", len(params.Targets)).
		Int("threshold_days", params.ThresholdDays).
		Msg("starting check run")

	concurrency := params.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]check.Result, len(params.Targets))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, target := range params.Targets {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, t check.Target) {
			defer wg.Done()
			defer func() { <-sem }()

			s.emit("check", t.Host, "started", "")
			r := checker.Check(ctx, t)
			// Write by index so input order survives the pool.
			results[idx] = r
			s.emit("check", t.Host, "completed", string(r.Status))
		}(i, target)
	}

	wg.Wait()

	batch := check.BuildAlertBatch(results, params.ThresholdDays, s.now())
	if batch != nil {
		logger.Info().Int("alerts", len(batch.Results)).Msg("check run produced alerts")
	} else {
		logger.Info().Msg("all certificates healthy")
	}

	return &Result{
		RunID:     runID,
		StartTime: startTime.Format(time.RFC3339Nano),
		EndTime:   s.now().Format(time.RFC3339Nano),
		Results:   results,
		Batch:     batch,
	}, nil
}

func (s *Service) emit(phase, target, status, message string) {
	if s.progressSink == nil {
		return
	}
	s.progressSink.OnEvent(ProgressEvent{
		Phase:     phase,
		Target:    target,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
}
