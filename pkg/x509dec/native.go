package x509dec

import (
	"context"
	"crypto/x509"
	"errors"
	"time"
)

// NativeDecoder decodes the end-date in-process with crypto/x509. No
// subprocess, no external dependency; behavior is otherwise equivalent to
// OpenSSLDecoder.
type NativeDecoder struct{}

// EndDate implements Decoder.
func (d *NativeDecoder) EndDate(ctx context.Context, der []byte) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, &DecodeError{Op: "native x509 decode", Err: err}
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return time.Time{}, &DecodeError{Op: "native x509 decode", Err: err}
	}
	if cert.NotAfter.IsZero() {
		return time.Time{}, &DecodeError{
			Op:  "native x509 decode",
			Err: errors.New("certificate missing notAfter field"),
		}
	}
	return cert.NotAfter, nil
}
