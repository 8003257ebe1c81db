package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wamark/internal/pubsub"
)

func TestLog_FormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatRender, "rendered", "format", "ansi", "segments", 3)

	out := buf.String()
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[render\] rendered format=ansi segments=3\n$`, out)
}

func TestLog_OddFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Warn(CatConfig, "odd", "orphan")
	ErrorErr(CatDB, "save failed", errors.New("disk full"), "name", "welcome")
	ErrorErr(CatDB, "nil error", nil)

	out := buf.String()
	require.Contains(t, out, "[WARN] [config] odd orphan=<missing>")
	require.Contains(t, out, "[ERROR] [db] save failed name=welcome error=disk full")
	require.Contains(t, out, "nil error error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetMinLevel(LevelWarn)
	Debug(CatMarkup, "hidden")
	Info(CatMarkup, "hidden")
	Error(CatMarkup, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	require.True(t, Enabled())
	buf.Reset()
	SetEnabled(false)
	require.False(t, Enabled())
	Error(CatMarkup, "muted")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() {
		Debug(CatUI, "nothing")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
	require.Nil(t, NewListener(context.Background()))
	require.False(t, Enabled())
}

func TestLog_ListenerReceivesEntries(t *testing.T) {
	InitWriter(&bytes.Buffer{})
	t.Cleanup(func() { defaultLogger = nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatTemplate, "saved", "name", "welcome")

	event, ok := listener.Listen()().(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.CreatedEvent, event.Type)
	require.Contains(t, event.Payload, "[template] saved name=welcome")
}

func TestInitWithTeaLog_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "wamark")
	require.NoError(t, err)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatWatcher, "file changed", "path", "body.txt")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[watcher] file changed path=body.txt")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"":        LevelDebug,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
	require.Equal(t, "UNKNOWN", Level(42).String())
}
