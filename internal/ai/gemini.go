// Package ai talks to the generative AI endpoint and normalizes its
// free-text output into structured data.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"fridgely-be/internal/errs"
	"fridgely-be/internal/metrics"
)

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	model      string
	baseURL    string // Overridable for tests
}

// NewClient creates a Gemini client
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey, model, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
	}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a text prompt and returns the model's text completion
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

// AnalyzeImage sends an instruction plus inline base64 image data and
// returns the model's text completion.
func (c *Client) AnalyzeImage(ctx context.Context, mimeType, imageBase64, instruction string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return c.generate(ctx, []part{
		{Text: instruction},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
	})
}

// generate performs the HTTP call with exponential backoff on 429/5xx.
// All failures come back as UpstreamError; the caller decides whether to
// swallow or surface them.
func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	if c.apiKey == "" {
		return "", errs.NewUpstreamError("gemini", fmt.Errorf("API key is not configured"))
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: parts}},
	})
	if err != nil {
		return "", errs.NewUpstreamError("gemini", fmt.Errorf("failed to marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var body []byte
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("gemini returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gemini returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response: %w", err))
		}
		return nil
	})
	if err != nil {
		metrics.RecordUpstream("gemini", "error")
		c.logger.Error("gemini call failed", slog.String("error", err.Error()))
		return "", errs.NewUpstreamError("gemini", err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.RecordUpstream("gemini", "error")
		return "", errs.NewUpstreamError("gemini", fmt.Errorf("failed to parse response: %w", err))
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		metrics.RecordUpstream("gemini", "error")
		return "", errs.NewUpstreamError("gemini", fmt.Errorf("no candidates in response"))
	}

	metrics.RecordUpstream("gemini", "ok")
	return result.Candidates[0].Content.Parts[0].Text, nil
}
