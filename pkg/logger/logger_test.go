package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{"", "development", slog.LevelDebug},
		{"", "production", slog.LevelInfo},
		{"WARN", "production", slog.LevelWarn},
		{"fatal", "production", LevelCritical},
		{"nonsense", "production", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value+"/"+tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.value, tt.env))
		})
	}
}

func TestCriticalLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "text")

	log.Critical("db down", "attempt", 3)

	assert.Contains(t, buf.String(), "level=CRITICAL")
	assert.Contains(t, buf.String(), "attempt=3")
}

func TestBusinessErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "json")

	log.BusinessError("nothing", nil)
	assert.Empty(t, buf.String())

	log.BusinessError("groups.accept: not pending", errors.New("not pending"), "membership_id", "m-1")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"membership_id":"m-1"`)
}

func TestFromContext(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := fallback.With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)
	got := FromContext(ctx, fallback)
	require.NotNil(t, got)
	assert.Same(t, scoped, got)
}
