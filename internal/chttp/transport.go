package chttp

import (
	"context"
	"net"
	"net/http"

	utls "github.com/refraction-networking/utls"
)

const defaultUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Transport is a wrapper around http.RoundTripper that fills in the headers
// a browser would send and allows to do something before and after the
// round trip.
type Transport struct {
	tr http.RoundTripper

	BeforeReq func(req *http.Request)
	AfterReq  func(resp *http.Response, req *http.Request)
}

// NewTransport returns the Transport over the underlying round tripper.  If
// underlying is nil, it uses the transport with the browser TLS fingerprint.
func NewTransport(underlying http.RoundTripper) *Transport {
	if underlying == nil {
		underlying = newChromeTransport()
	}
	return &Transport{tr: underlying}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUA)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	if t.BeforeReq != nil {
		t.BeforeReq(req)
	}
	resp, err := t.tr.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if t.AfterReq != nil {
		t.AfterReq(resp, req)
	}
	return resp, nil
}

// newChromeTransport returns an http.Transport that performs the TLS
// handshake with a Chrome client hello instead of the Go one.
func newChromeTransport() *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	// the custom dialer speaks HTTP/1.1, h2 must not engage.
	tr.ForceAttemptHTTP2 = false
	tr.DialTLSContext = dialTLS
	return tr
}

func dialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_Auto)
	if err != nil {
		conn.Close()
		return nil, err
	}
	// Chrome advertises h2 in ALPN, but net/http with a custom TLS dialer
	// only does HTTP/1.1, so the server must not be allowed to pick h2.
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
		}
	}
	uconn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloCustom)
	if err := uconn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, err
	}
	if err := uconn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return uconn, nil
}
