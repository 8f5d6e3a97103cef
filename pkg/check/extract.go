package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sciclon2/tls-monitoring/pkg/x509dec"
)

// DefaultDecodeTimeout bounds a single external decoder invocation.
const DefaultDecodeTimeout = 5 * time.Second

// Extractor recovers the expiration instant from a session.
//
// A verified session exposes the parsed leaf directly. A relaxed session
// does not: its structured fields are untrusted by construction, so the raw
// certificate bytes are handed to the decoder boundary instead.
type Extractor struct {
	Decoder x509dec.Decoder

	// DecodeTimeout bounds one decoder invocation. Zero means
	// DefaultDecodeTimeout.
	DecodeTimeout time.Duration
}

// Expiry returns the certificate's nominal expiration instant for the
// session, or an error that terminates the check for this target.
func (e *Extractor) Expiry(ctx context.Context, s *Session) (time.Time, error) {
	switch s.Tier {
	case TierVerified:
		if s.cert == nil || s.cert.NotAfter.IsZero() {
			return time.Time{}, errors.New("certificate missing notAfter field")
		}
		return s.cert.NotAfter, nil

	case TierRelaxed:
		if len(s.raw) == 0 {
			return time.Time{}, errors.New("could not retrieve certificate")
		}
		decodeCtx, cancel := context.WithTimeout(ctx, e.timeout())
		defer cancel()

		endDate, err := e.Decoder.EndDate(decodeCtx, s.raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("certificate parsing error: %w", err)
		}
		return endDate, nil

	default:
		return time.Time{}, fmt.Errorf("unknown session tier %d", s.Tier)
	}
}

func (e *Extractor) timeout() time.Duration {
	if e.DecodeTimeout > 0 {
		return e.DecodeTimeout
	}
	return DefaultDecodeTimeout
}
