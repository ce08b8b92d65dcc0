package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookup(t *testing.T, oembed, watch http.HandlerFunc) *Lookup {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oembed", oembed)
	mux.HandleFunc("/watch", watch)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Lookup{Client: srv.Client(), OEmbedURL: srv.URL + "/oembed", WatchURL: srv.URL + "/watch"}
}

func TestTitleFromOEmbed(t *testing.T) {
	var gotURL string
	l := newTestLookup(t,
		func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			_, _ = w.Write([]byte(`{"title":"Never Gonna Give You Up"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("watch page should not be fetched")
		},
	)

	title, err := l.Title(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", gotURL)
}

func TestTitleFallsBackToWatchPage(t *testing.T) {
	l := newTestLookup(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
			_, _ = w.Write([]byte(`<html><head><title>Rick &amp; Roll - YouTube</title></head><body></body></html>`))
		},
	)

	title, err := l.Title(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Rick & Roll", title)
}

func TestTitleFailsWhenBothSourcesFail(t *testing.T) {
	fail := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }
	l := newTestLookup(t, fail, fail)

	_, err := l.Title(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)

	_, err = l.Title(context.Background(), "")
	assert.EqualError(t, err, "empty video id")
}
