package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "json", Service: "quote-service", Version: "test"}, &buf)
		logger.Info("dataset loaded", slog.Int("quotes", 221))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

		assert.Equal(t, "dataset loaded", entry["msg"])
		assert.Equal(t, "quote-service", entry["service_name"])
		assert.InDelta(t, 221, entry["quotes"], 0.001)
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "text", Service: "quote-service", Version: "test"}, &buf)
		logger.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "pretty", Service: "quote-service", Version: "test"}, &buf)
		logger.Info("hello")

		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "warn", Format: "json", Service: "s", Version: "v"}, &buf)
		logger.Info("suppressed")
		logger.Warn("emitted")

		assert.NotContains(t, buf.String(), "suppressed")
		assert.Contains(t, buf.String(), "emitted")
	})

	t.Run("trace level enables everything", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "trace", Format: "json", Service: "s", Version: "v"}, &buf)
		logger.Log(context.Background(), LevelTrace, "page fetched")

		assert.Contains(t, buf.String(), "page fetched")
	})

	t.Run("redacts sensitive fields", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "json", Service: "s", Version: "v"}, &buf)
		logger.Info("request", slog.String("authorization", "Bearer abc123"))

		out := buf.String()
		assert.NotContains(t, out, "abc123")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "trace", want: LevelTrace},
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "nonsense", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "json", Service: "s", Version: "v"}, &buf)
		ctx := WithContext(context.Background(), logger)

		FromContext(ctx).Info("from context")

		assert.Contains(t, buf.String(), "from context")
	})

	t.Run("missing logger falls back to default", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id enrichment", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "json", Service: "s", Version: "v"}, &buf)
		ctx := WithContext(context.Background(), logger)
		ctx = WithRequestID(ctx, "req-42")

		FromContext(ctx).Info("enriched")

		assert.Contains(t, buf.String(), "req-42")
	})

	t.Run("source enrichment", func(t *testing.T) {
		var buf bytes.Buffer

		logger := NewWithWriter(Config{Level: "info", Format: "json", Service: "s", Version: "v"}, &buf)
		ctx := WithSource(WithContext(context.Background(), logger), "wikiquote")

		FromContext(ctx).Info("fetching")

		assert.Contains(t, buf.String(), `"source":"wikiquote"`)
	})
}

func TestMultiHandler(t *testing.T) {
	var first, second bytes.Buffer

	h := NewMultiHandler(
		slog.NewJSONHandler(&first, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h)

	logger.Info("info line")
	logger.Warn("warn line")

	assert.Contains(t, first.String(), "info line")
	assert.Contains(t, first.String(), "warn line")
	assert.NotContains(t, second.String(), "info line")
	assert.Contains(t, second.String(), "warn line")

	t.Run("with attrs fans out", func(t *testing.T) {
		var buf bytes.Buffer

		h := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
		slog.New(h.WithAttrs([]slog.Attr{slog.String("season", "2")})).Info("attr")

		assert.Contains(t, buf.String(), `"season":"2"`)
	})
}

func TestRedaction(t *testing.T) {
	replace := NewReplaceAttr()

	t.Run("field name", func(t *testing.T) {
		attr := replace(nil, slog.String("api_key", "supersecret"))
		assert.NotEqual(t, "supersecret", attr.Value.String())
	})

	t.Run("bearer value", func(t *testing.T) {
		attr := replace(nil, slog.String("header", "Bearer abc.def.ghi"))
		assert.False(t, strings.Contains(attr.Value.String(), "abc.def.ghi"))
	})

	t.Run("plain values untouched", func(t *testing.T) {
		attr := replace(nil, slog.String("query", "loyalty"))
		assert.Equal(t, "loyalty", attr.Value.String())
	})
}
