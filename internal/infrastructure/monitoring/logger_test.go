package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/apiecho/internal/config"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestZapLoggerWritesContextFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := newZapLogger(&config.LogConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), constants.ContextKeyRequestID, "req-1")
	log.WithFields(logger.Fields{"component": "test"}).Info(ctx, "Request processed", logger.Fields{"status": 200})
	log.Error(context.Background(), "Render failed", errors.New("boom"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "Request processed", entries[0]["msg"])
	assert.Equal(t, "req-1", entries[0]["request_id"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.Equal(t, 200.0, entries[0]["status"])
	assert.Contains(t, entries[0], "timestamp")
	assert.Equal(t, "boom", entries[1]["error"])
}

func TestZapLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := newZapLogger(&config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	child := log.WithFields(logger.Fields{"k": "v"})

	child.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, log.SetLevel("debug"))
	assert.Equal(t, "debug", log.Level())
	child.Debug(context.Background(), "visible")
	assert.Len(t, decodeLines(t, &buf), 1)

	assert.Error(t, log.SetLevel("loud"))
}

func TestZapLoggerForContext(t *testing.T) {
	log, err := newZapLogger(&config.LogConfig{Level: "info"}, &bytes.Buffer{})
	require.NoError(t, err)

	scoped := logger.NewNoopLogger()
	ctx := context.WithValue(context.Background(), constants.ContextKeyLogger, scoped)
	assert.Same(t, scoped, log.ForContext(ctx))
	assert.Same(t, log, log.ForContext(context.Background()))
}
