package x509dec

import (
	"bytes"
	"context"
	"encoding/pem"
	"os/exec"
	"time"
)

// OpenSSLDecoder decodes the end-date by invoking
// `openssl x509 -noout -enddate` with the PEM-encoded certificate on stdin.
// The invocation is bounded by the caller's context; a killed or non-zero
// exiting process is a DecodeError carrying the captured stderr.
type OpenSSLDecoder struct {
	// Binary overrides the executable name. Empty means "openssl".
	Binary string
}

// EndDate implements Decoder.
func (d *OpenSSLDecoder) EndDate(ctx context.Context, der []byte) (time.Time, error) {
	pemCert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.binary(), "x509", "-noout", "-enddate")
	cmd.Stdin = bytes.NewReader(pemCert)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Prefer the context's own error so a decoder timeout reads as
		// a deadline rather than "signal: killed".
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return time.Time{}, &DecodeError{
			Op:     "openssl x509 -noout -enddate",
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	// Output looks like "notAfter=Oct  9 23:59:59 2026 GMT".
	endDate, err := ParseEndDate(stdout.String())
	if err != nil {
		return time.Time{}, &DecodeError{Op: "decode openssl output", Err: err}
	}
	return endDate, nil
}

func (d *OpenSSLDecoder) binary() string {
	if d.Binary != "" {
		return d.Binary
	}
	return "openssl"
}
