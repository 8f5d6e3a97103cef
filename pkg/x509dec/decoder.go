// Package x509dec is the boundary to an X.509 decoding capability that can
// read a certificate's end-date independent of handshake verification state.
//
// The default implementation shells out to the openssl binary; a native
// in-process decoder is available as a drop-in replacement. Swapping one for
// the other does not touch the handshake fallback protocol.
package x509dec

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Decoder extracts the end-date (notAfter) from raw DER certificate bytes.
type Decoder interface {
	EndDate(ctx context.Context, der []byte) (time.Time, error)
}

// Kinds accepted by New.
const (
	KindOpenSSL = "openssl"
	KindNative  = "native"
)

// New returns the decoder implementation selected by kind.
func New(kind string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindOpenSSL:
		return &OpenSSLDecoder{}, nil
	case KindNative:
		return &NativeDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown x509 decoder %q (want %q or %q)", kind, KindOpenSSL, KindNative)
	}
}

// DecodeError is a typed failure of a decoder invocation. Stderr carries the
// diagnostic text captured from an external decoder, when there is one.
type DecodeError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := e.Op
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// endDateLayout parses openssl-style end-date text,
// "Jun 15 12:34:56 2025 GMT". The _2 verb tolerates the double-space
// padding openssl emits for single-digit days ("Oct  9 23:59:59 2026 GMT").
const endDateLayout = "Jan _2 15:04:05 2006 MST"

// ParseEndDate parses end-date text as produced by openssl or found in a
// certificate's notAfter field, with or without the "notAfter=" prefix.
func ParseEndDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if _, value, found := strings.Cut(text, "="); found {
		text = strings.TrimSpace(value)
	}
	endDate, err := time.Parse(endDateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse end-date %q: %w", text, err)
	}
	return endDate, nil
}
