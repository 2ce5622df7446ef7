package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate the shared logger, so they do not run in parallel.

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "debug", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = Init(Options{Level: "info", Format: "text", Output: &bytes.Buffer{}}) })

	WithFields(logrus.Fields{"player": "p1"}).Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "p1", entry["player"])
	assert.Equal(t, "debug", entry["level"])
}

func TestInit_InvalidOptions(t *testing.T) {
	assert.Error(t, Init(Options{Level: "loud"}))
	assert.Error(t, Init(Options{Format: "xml"}))
}

func TestLogPanic_IncludesStack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "info", Format: "text", Output: &buf}))
	t.Cleanup(func() { _ = Init(Options{Level: "info", Format: "text", Output: &bytes.Buffer{}}) })

	LogPanic("boom")
	assert.Contains(t, buf.String(), "[PANIC] boom")
	assert.Contains(t, buf.String(), "stack=")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "error", Format: "text", Output: &buf}))
	t.Cleanup(func() { _ = Init(Options{Level: "info", Format: "text", Output: &bytes.Buffer{}}) })

	LogInfo("quiet %d", 1)
	assert.Empty(t, buf.String())

	LogError("loud %d", 2)
	assert.Contains(t, buf.String(), "loud 2")
}
