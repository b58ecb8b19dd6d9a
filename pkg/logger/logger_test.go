package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestNew_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo, Format: "json"})

	log.With(Component("uow")).Info("commit applied", RowsAffected(3), Aggregate("course"))
	log.Debug("filtered out")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "commit applied", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "uow", entry["component"])
	assert.Equal(t, "course", entry["aggregate"])
	assert.EqualValues(t, 3, entry["rows_affected"])
}

func TestErr_NilIsSkipped(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core))

	log.Error("boom", Err(errors.New("store unreachable")))
	log.Info("fine", Err(nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "store unreachable", entries[0].ContextMap()["error"])
	assert.NotContains(t, entries[1].ContextMap(), "error")
}

func TestContextPropagation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := FromZap(zap.New(core)).WithRequestID("req-1")

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("handled")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()[RequestIDKey])
	assert.NotNil(t, FromContext(context.Background()))
}
