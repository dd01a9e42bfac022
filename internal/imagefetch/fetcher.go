// Package imagefetch downloads caller-supplied image URLs for analysis.
// Fetches go through an SSRF-guarded client: private, loopback and
// link-local addresses are blocked at the dialer, so DNS rebinding
// cannot reach internal hosts either.
package imagefetch

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"

	"fridgely-be/internal/errs"
)

// Fetcher downloads images over HTTP with size and scheme restrictions.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates an image fetcher with the given timeout and size cap
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &Fetcher{
		client:   safeurl.Client(config).Client,
		maxBytes: maxBytes,
	}
}

// Fetch downloads the image and returns it base64-encoded along with its
// content type. Oversized bodies and non-image responses are rejected.
func (f *Fetcher) Fetch(rawURL string) (data string, mimeType string, err error) {
	if err := validateURL(rawURL); err != nil {
		return "", "", errs.NewValidationError(err.Error())
	}

	resp, err := f.client.Get(rawURL)
	if err != nil {
		return "", "", errs.NewUpstreamError("image-fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", errs.NewUpstreamError("image-fetch", fmt.Errorf("status %d fetching image", resp.StatusCode))
	}

	mimeType = resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return "", "", errs.NewUpstreamError("image-fetch", fmt.Errorf("unexpected content type %q", mimeType))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", "", errs.NewUpstreamError("image-fetch", fmt.Errorf("failed to read image: %w", err))
	}
	if int64(len(body)) > f.maxBytes {
		return "", "", errs.NewValidationError(fmt.Sprintf("image exceeds %d bytes", f.maxBytes))
	}

	return base64.StdEncoding.EncodeToString(body), mimeType, nil
}

// validateURL is a static pre-check before any DNS resolution happens;
// the dialer-level checks in the safeurl client are the real guard.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty image URL")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image URL: %v", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("disallowed scheme: %s", scheme)
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("empty host in image URL")
	}
	return nil
}
