package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	group   string
	enabled bool
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := &mockHandler{enabled: h.enabled, group: h.group}
	newHandler.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return newHandler
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := &mockHandler{enabled: h.enabled, attrs: h.attrs, group: name}
	if h.group != "" {
		newHandler.group = h.group + "." + name
	}
	return newHandler
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: true}

	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

		h1.enabled = false
		h2.enabled = false
		assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))

		h1.enabled = true
		h2.enabled = true
	})

	t.Run("Handle", func(t *testing.T) {
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
		err := multi.Handle(context.Background(), record)
		assert.NoError(t, err)
		assert.Len(t, h1.getRecords(), 1)
		assert.Len(t, h2.getRecords(), 1)
		assert.Equal(t, "test message", h1.getRecords()[0].Message)
	})

	t.Run("Handle skips disabled handlers", func(t *testing.T) {
		h2.enabled = false
		defer func() { h2.enabled = true }()

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "second", 0)
		require.NoError(t, multi.Handle(context.Background(), record))
		assert.Len(t, h1.getRecords(), 2)
		assert.Len(t, h2.getRecords(), 1)
	})

	t.Run("WithAttrs", func(t *testing.T) {
		attrs := []slog.Attr{slog.String("key", "value")}
		handlerWithAttrs := multi.WithAttrs(attrs)

		newMulti, ok := handlerWithAttrs.(*multiHandler)
		require.True(t, ok, "WithAttrs should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, attrs, mockH.attrs)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		handlerWithGroup := multi.WithGroup("bench")

		newMulti, ok := handlerWithGroup.(*multiHandler)
		require.True(t, ok, "WithGroup should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, "bench", mockH.group)
		}
	})
}

func withStderr(t *testing.T, w *bytes.Buffer) {
	t.Helper()
	old := stderr
	stderr = w
	t.Cleanup(func() { stderr = old })
}

func TestNewLogger(t *testing.T) {
	t.Run("Console goes to stderr", func(t *testing.T) {
		var buf bytes.Buffer
		withStderr(t, &buf)

		logger := NewLogger(false, "", false)
		logger.Info("console message")
		logger.Debug("hidden debug")

		assert.Contains(t, buf.String(), "console message")
		assert.NotContains(t, buf.String(), "hidden debug")
	})

	t.Run("Debug true", func(t *testing.T) {
		var buf bytes.Buffer
		withStderr(t, &buf)

		logger := NewLogger(true, "", false)
		logger.Debug("debug message")
		assert.Contains(t, buf.String(), "debug message")
	})

	t.Run("File logging", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hwbench.log")

		logger := NewLogger(false, path, true)
		logger.Info("file message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "file message")
	})

	t.Run("Console and file", func(t *testing.T) {
		var buf bytes.Buffer
		withStderr(t, &buf)
		path := filepath.Join(t.TempDir(), "hwbench.log")

		logger := NewLogger(false, path, false)
		logger.Info("both")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "both")
		assert.Contains(t, buf.String(), "both")
	})

	t.Run("No handlers", func(t *testing.T) {
		var buf bytes.Buffer
		withStderr(t, &buf)

		logger := NewLogger(false, "", true)
		assert.NotNil(t, logger)
		logger.Info("this goes nowhere")
		assert.Empty(t, buf.String())
	})
}

func TestInitLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	withStderr(t, &buf)

	logger := InitLogger(false, "")
	assert.Same(t, logger, slog.Default())
	slog.Info("through default")
	assert.Contains(t, buf.String(), "through default")
}

func TestLogError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	LogError("write failed", assert.AnError, "path", "/tmp/x")

	assert.Contains(t, buf.String(), "write failed")
	assert.Contains(t, buf.String(), assert.AnError.Error())
	assert.Contains(t, buf.String(), "/tmp/x")
}

func TestNewLogger_FileError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	testLogger := slog.New(slog.NewJSONHandler(&buf, nil))
	slog.SetDefault(testLogger)

	invalidPath := filepath.Join(t.TempDir(), "nonexistent/test.log")
	logger := NewLogger(false, invalidPath, true)
	assert.NotNil(t, logger)

	output := buf.String()
	assert.True(t, strings.Contains(output, "Failed to open log file"), "Expected log file error message, got: "+output)
}
