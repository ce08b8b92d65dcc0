package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{})
	l.Debug("hidden")
	l.Info("Starting server", "port", 3000)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="Starting server"`)
	assert.Contains(t, out, "port=3000")
}

func TestNewJSONDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Debug: true, JSON: true})
	l.Debug("Video link rejected", "link", "nope")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "Video link rejected", rec["msg"])
	assert.Equal(t, "nope", rec["link"])
}
