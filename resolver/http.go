package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mosaic-cli/mosaic/auth"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/stream"
)

// HTTP fetches a URL directly and streams the response body.
// Bearer tokens stored with the auth package are sent to their hosts.
type HTTP struct {
	Client *http.Client
}

type bodyHandle struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *bodyHandle) Close() error {
	b.cancel()
	return b.ReadCloser.Close()
}

// Resolve issues a GET and waits for the response headers. ctx bounds only that wait:
// the body keeps flowing after ctx ends, until the handle is closed.
func (h *HTTP) Resolve(ctx context.Context, rawURL, quality string) (stream.Handle, error) {
	streamCtx, cancel := context.WithCancel(context.Background())
	stop := context.AfterFunc(ctx, cancel)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		stop()
		cancel()
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	if token, ok := auth.Token(req.URL.Host).Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.client().Do(req)
	if !stop() && err == nil {
		// ctx ended while the headers arrived
		err = ctx.Err()
		_ = resp.Body.Close()
	}
	if err != nil {
		cancel()
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		cancel()
		return nil, stream.NewResolutionError(rawURL, quality, fmt.Errorf("unexpected status %s", resp.Status))
	}

	return &bodyHandle{ReadCloser: resp.Body, cancel: cancel}, nil
}

// Qualities implements stream.Resolver.
func (h *HTTP) Qualities(context.Context, string) ([]string, error) {
	return single(), nil
}

func (h *HTTP) client() *http.Client {
	if h.Client == nil {
		return http.DefaultClient
	}
	return h.Client
}
