package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", "json", &buf)
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "console", &buf)
	require.NoError(t, err)

	l.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("verbose", "json", &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log format")
}
