package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "debug", "json")
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("requestId", "r1").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "r1", entry["requestId"])
	require.Contains(t, entry, "ts")
}

func TestNewWithOutputFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "nonsense", "text")
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	require.Empty(t, buf.String())
}
