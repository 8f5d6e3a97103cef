package x509dec

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCertDER(t *testing.T, notAfter time.Time) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "decoder-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	return der
}

func TestParseEndDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "double-digit day",
			text: "Jun 15 12:34:56 2025 GMT",
			want: time.Date(2025, time.June, 15, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "single-digit day with double space",
			text: "Oct  9 23:59:59 2026 GMT",
			want: time.Date(2026, time.October, 9, 23, 59, 59, 0, time.UTC),
		},
		{
			name: "notAfter prefix stripped",
			text: "notAfter=Jun 15 12:34:56 2025 GMT",
			want: time.Date(2025, time.June, 15, 12, 34, 56, 0, time.UTC),
		},
		{
			name: "surrounding whitespace and trailing newline",
			text: "notAfter=Jun 15 12:34:56 2025 GMT\n",
			want: time.Date(2025, time.June, 15, 12, 34, 56, 0, time.UTC),
		},
		{
			name:    "garbage",
			text:    "not a date at all",
			wantErr: true,
		},
		{
			name:    "empty",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndDate(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    string
		want    Decoder
		wantErr bool
	}{
		{kind: "", want: &OpenSSLDecoder{}},
		{kind: "openssl", want: &OpenSSLDecoder{}},
		{kind: "OpenSSL", want: &OpenSSLDecoder{}},
		{kind: " native ", want: &NativeDecoder{}},
		{kind: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			got, err := New(tt.kind)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.IsType(t, tt.want, got)
		})
	}
}

func TestNativeDecoder(t *testing.T) {
	t.Parallel()

	decoder := &NativeDecoder{}

	t.Run("reads notAfter", func(t *testing.T) {
		notAfter := time.Date(2026, time.October, 9, 23, 59, 59, 0, time.UTC)
		der := testCertDER(t, notAfter)

		got, err := decoder.EndDate(context.Background(), der)
		require.NoError(t, err)
		require.True(t, got.Equal(notAfter), "got %v, want %v", got, notAfter)
	})

	t.Run("malformed bytes", func(t *testing.T) {
		_, err := decoder.EndDate(context.Background(), []byte{0xde, 0xad})
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := decoder.EndDate(ctx, testCertDER(t, time.Now().Add(time.Hour)))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpenSSLDecoder(t *testing.T) {
	if _, err := exec.LookPath("openssl"); err != nil {
		t.Skip("openssl binary not available")
	}

	t.Run("reads notAfter via subprocess", func(t *testing.T) {
		notAfter := time.Date(2026, time.October, 9, 23, 59, 59, 0, time.UTC)
		der := testCertDER(t, notAfter)

		decoder := &OpenSSLDecoder{}
		got, err := decoder.EndDate(context.Background(), der)
		require.NoError(t, err)
		require.True(t, got.Equal(notAfter), "got %v, want %v", got, notAfter)
	})

	t.Run("malformed input surfaces stderr", func(t *testing.T) {
		decoder := &OpenSSLDecoder{}
		_, err := decoder.EndDate(context.Background(), []byte("not a certificate"))
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
		require.NotEmpty(t, decErr.Stderr)
	})

	t.Run("expired deadline reads as a deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		decoder := &OpenSSLDecoder{}
		_, err := decoder.EndDate(ctx, testCertDER(t, time.Now().Add(time.Hour)))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestOpenSSLDecoderMissingBinary(t *testing.T) {
	t.Parallel()

	decoder := &OpenSSLDecoder{Binary: "definitely-not-openssl-zzz"}
	_, err := decoder.EndDate(context.Background(), testCertDER(t, time.Now().Add(time.Hour)))
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.False(t, errors.Is(err, context.DeadlineExceeded))
}

func TestDecodeErrorMessage(t *testing.T) {
	t.Parallel()

	err := &DecodeError{Op: "openssl x509 -noout -enddate", Stderr: "unable to load certificate\n", Err: errors.New("exit status 1")}
	require.Equal(t, "openssl x509 -noout -enddate: exit status 1: unable to load certificate", err.Error())

	bare := &DecodeError{Op: "native x509 decode"}
	require.Equal(t, "native x509 decode", bare.Error())
}
