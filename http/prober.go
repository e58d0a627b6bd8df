// Package http implements hydroagent.DocumentProber by asking the server for
// a link's content type without downloading the body.
package http

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// DefaultProbeTimeout is the default timeout for one probe.
const DefaultProbeTimeout = 10 * time.Second

// DocumentTypes are the media types treated as documents.
var DocumentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.",
	"application/vnd.ms-excel",
	"application/zip",
}

// Ensure Prober implements hydroagent.DocumentProber at compile time.
var _ hydroagent.DocumentProber = (*Prober)(nil)

// Prober checks whether a URL serves a document using a HEAD request,
// retrying with a one-byte ranged GET when the server rejects HEAD.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the timeout for each probe.
// Defaults to DefaultProbeTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

// WithClient sets the HTTP client. Its Timeout is overwritten by the
// probe timeout.
func WithClient(c *http.Client) Option {
	return func(p *Prober) {
		p.client = c
	}
}

// NewProber creates a new Prober.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}

	client := &http.Client{}
	if p.client != nil {
		c := *p.client
		client = &c
	}
	client.Timeout = p.timeout
	p.client = client

	return p
}

// IsDocument reports whether url serves a document, judged by Content-Type
// or an attachment Content-Disposition.
func (p *Prober) IsDocument(ctx context.Context, url string) (bool, error) {
	resp, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return false, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return false, hydroagent.Errorf(hydroagent.ERESOURCE, "HTTP %d for %s", resp.StatusCode, url)
	}
	return isDocumentResponse(resp.Header), nil
}

// do sends a bodiless request and closes the response body.
func (p *Prober) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, hydroagent.Wrapf(hydroagent.EINVALID, err, "probe request")
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, hydroagent.Wrapf(hydroagent.ETIMEOUT, err, "probing %s exceeded %s", url, p.timeout)
		}
		return nil, hydroagent.Wrapf(hydroagent.ERESOURCE, err, "probing %s", url)
	}
	_ = resp.Body.Close()
	return resp, nil
}

func isDocumentResponse(h http.Header) bool {
	if disposition, _, err := mime.ParseMediaType(h.Get("Content-Disposition")); err == nil && disposition == "attachment" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	if err != nil {
		return false
	}
	for _, t := range DocumentTypes {
		if mediaType == t || (strings.HasSuffix(t, ".") && strings.HasPrefix(mediaType, t)) {
			return true
		}
	}
	return false
}
