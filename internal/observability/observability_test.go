package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "debug", "json")

	logger.Debug("parsed file", "path", "a.tek", "investigations", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed file", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "a.tek", entry["path"])
}

func TestNewLogger_TextAndLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "chatty", "TEXT")

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
}

func TestNewMetricsForTesting_IsolatedRegistries(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.Investigations.WithLabelValues("PA").Inc()
	a.FilesConsumed.Add(2)

	assert.InDelta(t, 1, testutil.ToFloat64(a.Investigations.WithLabelValues("PA")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(a.FilesConsumed), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.FilesConsumed), 0)
}
