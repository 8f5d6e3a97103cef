package check

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strconv"
	"time"
)

// Defaults for the handshake tier of a check. The decode timeout lives on
// the Extractor, the two scopes are independent.
const (
	DefaultPort           = 443
	DefaultConnectTimeout = 10 * time.Second
)

// Tier identifies which handshake tier produced a session.
type Tier int

const (
	// TierVerified means the strict handshake succeeded: full chain and
	// hostname verification against the configured root pool.
	TierVerified Tier = iota

	// TierRelaxed means verification was skipped; the certificate was
	// obtained but must not be trusted.
	TierRelaxed
)

func (t Tier) String() string {
	switch t {
	case TierVerified:
		return "verified"
	case TierRelaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// Session is the discriminated outcome of a successful handshake. A verified
// session carries the parsed leaf certificate; a relaxed session carries only
// the raw DER bytes, since the structured fields are not to be trusted.
type Session struct {
	Tier Tier
	cert *x509.Certificate
	raw  []byte
}

// Dialer performs the two-tier TLS handshake against a target host.
//
// Tier one is a strict handshake with full verification. A failure that is
// specifically a verification failure (untrusted issuer, broken chain,
// hostname mismatch) falls back to tier two, a relaxed handshake with
// verification disabled: many hosts serve a valid leaf with an incomplete
// intermediate chain, and their expiry date is still worth monitoring. Any
// other failure (DNS, connection refused, timeout, protocol error) is
// terminal with no fallback, and there are no retries beyond the two tiers.
type Dialer struct {
	// Port to connect to. Zero means DefaultPort.
	Port int

	// Timeout bounds connection establishment plus handshake, and applies
	// to each tier independently. Zero means DefaultConnectTimeout.
	Timeout time.Duration

	// RootCAs is the trust bundle for the strict tier. Nil means the
	// system bundle.
	RootCAs *x509.CertPool
}

// Handshake runs the tier state machine for one host and returns the
// resulting session, or the terminal error when neither tier produced one.
func (d *Dialer) Handshake(ctx context.Context, host string) (*Session, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(d.port()))

	conn, err := d.dial(ctx, addr, &tls.Config{
		ServerName: host,
		RootCAs:    d.RootCAs,
	})
	if err == nil {
		return verifiedSession(conn), nil
	}
	if !isVerificationError(err) {
		return nil, err
	}

	conn, err = d.dial(ctx, addr, &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: true, //nolint:gosec // relaxed tier by contract
	})
	if err != nil {
		return nil, err
	}
	return relaxedSession(conn), nil
}

func (d *Dialer) dial(ctx context.Context, addr string, cfg *tls.Config) (*tls.Conn, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: d.timeout()},
		Config:    cfg,
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return conn.(*tls.Conn), nil
}

func (d *Dialer) port() int {
	if d.Port > 0 {
		return d.Port
	}
	return DefaultPort
}

func (d *Dialer) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultConnectTimeout
}

// verifiedSession captures the leaf certificate and releases the connection.
func verifiedSession(conn *tls.Conn) *Session {
	defer func() { _ = conn.Close() }()

	s := &Session{Tier: TierVerified}
	if peers := conn.ConnectionState().PeerCertificates; len(peers) > 0 {
		s.cert = peers[0]
	}
	return s
}

// relaxedSession keeps only the raw DER bytes of the unverified leaf.
func relaxedSession(conn *tls.Conn) *Session {
	defer func() { _ = conn.Close() }()

	s := &Session{Tier: TierRelaxed}
	if peers := conn.ConnectionState().PeerCertificates; len(peers) > 0 {
		s.raw = peers[0].Raw
	}
	return s
}

// isVerificationError reports whether err is a certificate verification
// failure, the only error class that triggers the relaxed tier.
func isVerificationError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid)
}
