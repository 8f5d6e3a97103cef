package check

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sciclon2/tls-monitoring/pkg/x509dec"
)

// CheckerConfig holds the per-run settings of a Checker. Zero values fall
// back to the package defaults.
type CheckerConfig struct {
	Port           int
	ConnectTimeout time.Duration
	DecodeTimeout  time.Duration

	// RootCAs overrides the trust bundle for the strict handshake tier,
	// mainly for tests. Nil means the system bundle.
	RootCAs *x509.CertPool
}

// Checker runs the full pipeline for single targets: handshake, expiry
// extraction, classification. Checks are independent; a Checker is safe for
// concurrent use.
type Checker struct {
	dialer    Dialer
	extractor Extractor
	logger    zerolog.Logger

	// now is the clock used for day counting, swappable in tests.
	now func() time.Time
}

// NewChecker builds a Checker with the given settings and decoder.
func NewChecker(cfg CheckerConfig, decoder x509dec.Decoder) *Checker {
	return &Checker{
		dialer: Dialer{
			Port:    cfg.Port,
			Timeout: cfg.ConnectTimeout,
			RootCAs: cfg.RootCAs,
		},
		extractor: Extractor{
			Decoder:       decoder,
			DecodeTimeout: cfg.DecodeTimeout,
		},
		logger: log.With().Str("component", "check").Logger(),
		now:    time.Now,
	}
}

// Check produces exactly one result for the target. Every failure mode is
// captured as an ERROR result; Check never panics and never returns an
// error to the caller, so one target can never abort the batch.
func (c *Checker) Check(ctx context.Context, t Target) Result {
	logger := c.logger.With().Str("host", t.Host).Logger()

	session, err := c.dialer.Handshake(ctx, t.Host)
	if err != nil {
		logger.Debug().Err(err).Msg("handshake failed")
		return ErrorResult(t, err)
	}
	logger.Debug().Stringer("tier", session.Tier).Msg("handshake complete")

	expiresAt, err := c.extractor.Expiry(ctx, session)
	if err != nil {
		logger.Debug().Err(err).Msg("expiry extraction failed")
		return ErrorResult(t, err)
	}

	days := DaysRemaining(c.now(), expiresAt)
	status := ClassifyDays(days)
	logger.Debug().
		Time("expires_at", expiresAt).
		Int("days_remaining", days).
		Str("status", string(status)).
		Msg("target classified")

	return Result{
		Domain:        t.Host,
		Runbook:       t.Runbook,
		ExpiresAt:     &expiresAt,
		DaysRemaining: &days,
		Status:        status,
	}
}
