package processing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjeelani/soundseq/pkg/client"
)

func TestApplySFXSendsVerbatimLink(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotType   string
		gotBody   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	link := "https://www.YouTube.com/watch?v=abc123&t=10s"
	c := New(srv.URL+"/", srv.Client())
	require.NoError(t, c.ApplySFX(context.Background(), link))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/apply-sfx", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]string{"videoLink": link}, gotBody)
}

func TestApplySFXStatusHandling(t *testing.T) {
	tests := []struct {
		status int
		ok     bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusAccepted, true},
		{http.StatusNoContent, true},
		{http.StatusMovedPermanently, false},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusMovedPermanently {
					w.Header().Set("Location", "/apply-sfx")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"ignored":true}`))
			}))
			defer srv.Close()

			httpClient := srv.Client()
			httpClient.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

			err := New(srv.URL, httpClient).ApplySFX(context.Background(), "youtu.be/abc")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var serr *StatusError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.status, serr.StatusCode)
		})
	}
}

func TestApplySFXTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, http.DefaultClient).ApplySFX(context.Background(), "youtu.be/abc")
	require.Error(t, err)
	var serr *StatusError
	assert.False(t, errors.As(err, &serr), "transport failures carry no status")
}

func TestNewDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("", http.DefaultClient).BaseURL)
}

func TestApplySFXReportsRedirectAsRejection(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/apply-sfx" {
			http.Redirect(w, r, "/elsewhere", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	httpClient, err := client.NewHttpClient(client.Options{TimeoutSec: 5})
	require.NoError(t, err)

	err = New(srv.URL, httpClient).ApplySFX(context.Background(), "https://youtu.be/abc123")

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusFound, serr.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}
