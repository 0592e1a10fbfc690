// Package webimage probes externally hosted recipe images. Images are never
// stored here; recipes only carry a URL, and the probe is a best-effort check
// that the URL serves an image before the recipe is saved.
package webimage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/svg+xml": true,
	"image/webp":    true,
	"image/gif":     true,
}

var (
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrUnreachable         = errors.New("image url unreachable")
)

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

type Prober struct {
	client HTTPDoer
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

func NewProber(client *retryablehttp.Client) *Prober {
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}
	return &Prober{client: client}
}

// Probe issues a HEAD request against url and checks that it answers 2xx with
// an image content type.
func (p *Prober) Probe(ctx context.Context, url string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("building probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("parsing content type %q: %w", contentType, ErrUnsupportedMimeType)
	}
	if !allowedImageTypes[strings.ToLower(mediaType)] {
		return fmt.Errorf("mime type %q: %w", mediaType, ErrUnsupportedMimeType)
	}

	return nil
}
