package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mosaic-cli/mosaic/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const (
	dialTimeout   = 30 * time.Second
	headerTimeout = 30 * time.Second
)

// FingerprintTransport sends https requests over TLS connections that present a
// Chrome Client Hello. Some stream CDNs refuse the default Go handshake.
//
// h2 is attempted first. Servers that only speak http/1.1 are retried over a
// connection that advertises http/1.1 alone. Plain http goes through a regular transport.
type FingerprintTransport struct {
	h2    *http2.Transport
	h1    *http.Transport
	plain *http.Transport
}

// NewFingerprintTransport returns a ready transport.
func NewFingerprintTransport() *FingerprintTransport {
	plain := newTransport()

	return &FingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialFingerprinted(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialFingerprinted(ctx, network, addr, []string{"http/1.1"})
			},
			ResponseHeaderTimeout: headerTimeout,
			IdleConnTimeout:       30 * time.Second,
		},
		plain: plain,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *FingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// a request with a body that was already consumed cannot be replayed
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return nil, err
	}

	log.Debugf("network: h2 to %s failed, retrying over http/1.1: %v", req.URL.Host, err)

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}
	return t.h1.RoundTrip(retry)
}

// CloseIdleConnections releases pooled connections of every underlying transport.
func (t *FingerprintTransport) CloseIdleConnections() {
	t.h2.CloseIdleConnections()
	t.h1.CloseIdleConnections()
	t.plain.CloseIdleConnections()
}

func dialFingerprinted(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", host, err)
	}

	return tlsConn, nil
}
