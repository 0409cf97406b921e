package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-infra-files", cfg.KafkaSourceTopic)
	assert.Equal(t, "parsed-investigations", cfg.KafkaSinkTopic)
	assert.Equal(t, "infra-ingest", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, domain.ModeLenient, cfg.ParseMode)
	assert.Equal(t, "auto", cfg.SourceEncoding)
	assert.Equal(t, 4, cfg.IngestWorkers)
	assert.Equal(t, int64(32<<20), cfg.MaxFileBytes)
	assert.Empty(t, cfg.SQLitePath)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("PARSE_MODE", "strict")
	t.Setenv("SOURCE_ENCODING", "windows-1252")
	t.Setenv("INGEST_WORKERS", "8")
	t.Setenv("MAX_FILE_BYTES", "1024")
	t.Setenv("SQLITE_PATH", "/tmp/infra.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, domain.ModeStrict, cfg.ParseMode)
	assert.Equal(t, "windows-1252", cfg.SourceEncoding)
	assert.Equal(t, 8, cfg.IngestWorkers)
	assert.Equal(t, int64(1024), cfg.MaxFileBytes)
	assert.Equal(t, "/tmp/infra.db", cfg.SQLitePath)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidParseMode(t *testing.T) {
	t.Setenv("PARSE_MODE", "sloppy")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARSE_MODE")
}

func TestLoad_InvalidPositiveInts(t *testing.T) {
	for _, key := range []string{"INGEST_WORKERS", "MAX_FILE_BYTES"} {
		for _, val := range []string{"0", "-3", "many"} {
			t.Run(key+"="+val, func(t *testing.T) {
				t.Setenv(key, val)
				_, err := Load()
				require.Error(t, err)
				assert.Contains(t, err.Error(), key)
			})
		}
	}
}
