// Package processing talks to the external service that applies sound effects to a video.
package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kjeelani/soundseq/pkg/client"
	"github.com/kjeelani/soundseq/pkg/models"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	applySFXPath   = "/apply-sfx"
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("processing service returned status %d", e.StatusCode)
}

// Client posts video links to the processing service.
type Client struct {
	BaseURL string
	HTTP    client.HTTPClient
}

func New(baseURL string, httpClient client.HTTPClient) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
	}
}

// ApplySFX hands videoLink, unchanged, to the service. Any 2xx counts as accepted;
// the response body is ignored.
func (c *Client) ApplySFX(ctx context.Context, videoLink string) error {
	bodyBytes, err := json.Marshal(models.ApplySFXRequest{VideoLink: videoLink})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+applySFXPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", applySFXPath, err)
	}
	defer func(Body io.ReadCloser) {
		_, _ = io.Copy(io.Discard, Body)
		cerr := Body.Close()
		if cerr != nil {
			slog.Warn("Failed to close response body", "err", cerr)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	slog.Debug("Processing service accepted link", "status", resp.StatusCode)
	return nil
}
