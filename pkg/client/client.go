package client

import (
	"fmt"
	"net/http"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// HTTPClient is the transport every outbound call goes through.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures NewHttpClient.
type Options struct {
	// TimeoutSec bounds a whole request, body included (defaults to 60).
	TimeoutSec int
	// InsecureSkipVerify disables certificate checks, e.g. for a self-signed dev backend.
	InsecureSkipVerify bool
	// FollowRedirects lets the client chase 3xx responses. Off by default so
	// callers see the status the server actually answered with.
	FollowRedirects bool
}

type tlsWrapper struct {
	innerClient tls_client.HttpClient
}

func (w *tlsWrapper) Do(req *http.Request) (*http.Response, error) {
	fReq := &fhttp.Request{
		Method:        req.Method,
		URL:           req.URL,
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        make(fhttp.Header, len(req.Header)),
		Body:          req.Body,
		GetBody:       req.GetBody,
		ContentLength: req.ContentLength,
		Host:          req.Host,
	}
	for k, v := range req.Header {
		fReq.Header[k] = v
	}
	fReq = fReq.WithContext(req.Context())

	resp, err := w.innerClient.Do(fReq)
	if err != nil {
		return nil, err
	}

	netResp := &http.Response{
		Status:           resp.Status,
		StatusCode:       resp.StatusCode,
		Proto:            resp.Proto,
		ProtoMajor:       resp.ProtoMajor,
		ProtoMinor:       resp.ProtoMinor,
		ContentLength:    resp.ContentLength,
		Body:             resp.Body,
		Header:           make(http.Header, len(resp.Header)),
		Uncompressed:     resp.Uncompressed,
		TransferEncoding: resp.TransferEncoding,
		Request:          req,
	}
	for k, v := range resp.Header {
		netResp.Header[k] = v
	}

	return netResp, nil
}

// NewHttpClient builds a browser-profile TLS client wrapped behind HTTPClient.
func NewHttpClient(opts Options) (HTTPClient, error) {
	if opts.TimeoutSec <= 0 {
		opts.TimeoutSec = 60
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(opts.TimeoutSec),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	if opts.InsecureSkipVerify {
		options = append(options, tls_client.WithInsecureSkipVerify())
	}
	if !opts.FollowRedirects {
		options = append(options, tls_client.WithNotFollowRedirects())
	}

	c, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	return &tlsWrapper{innerClient: c}, nil
}
