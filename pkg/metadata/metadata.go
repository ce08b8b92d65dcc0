// Package metadata looks up display details for a YouTube video.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kjeelani/soundseq/pkg/client"
)

const (
	DefaultOEmbedURL = "https://www.youtube.com/oembed"
	DefaultWatchURL  = "https://www.youtube.com/watch"
)

// Lookup fetches video titles: fast oEmbed first, then the watch page <title>.
type Lookup struct {
	Client    client.HTTPClient
	OEmbedURL string
	WatchURL  string
}

func NewLookup(c client.HTTPClient) *Lookup {
	return &Lookup{Client: c, OEmbedURL: DefaultOEmbedURL, WatchURL: DefaultWatchURL}
}

// Title returns the title of the video with the given id.
func (l *Lookup) Title(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", errors.New("empty video id")
	}
	title, err := l.oembedTitle(ctx, videoID)
	if err == nil && title != "" {
		return title, nil
	}
	slog.Debug("oEmbed title failed, falling back to scraping", "vid", videoID, "err", err)
	return l.scrapedTitle(ctx, videoID)
}

func (l *Lookup) watchURL(videoID string) string {
	return l.WatchURL + "?v=" + url.QueryEscape(videoID)
}

func (l *Lookup) oembedTitle(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("url", DefaultWatchURL+"?v="+videoID)
	q.Set("format", "json")

	resp, err := l.get(ctx, l.OEmbedURL+"?"+q.Encode())
	if err != nil {
		return "", err
	}
	defer closeBody(resp.Body)

	var data struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode oembed: %w", err)
	}
	return strings.TrimSpace(data.Title), nil
}

func (l *Lookup) scrapedTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := l.get(ctx, l.watchURL(videoID))
	if err != nil {
		return "", err
	}
	defer closeBody(resp.Body)

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", fmt.Errorf("parse watch page: %w", err)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSpace(strings.TrimSuffix(title, " - YouTube"))
	if title == "" {
		return "", fmt.Errorf("title not found for %s", videoID)
	}
	return title, nil
}

func (l *Lookup) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		closeBody(resp.Body)
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp, nil
}

func closeBody(body io.ReadCloser) {
	if cerr := body.Close(); cerr != nil {
		slog.Warn("Failed to close response body", "err", cerr)
	}
}
