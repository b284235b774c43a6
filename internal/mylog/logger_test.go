package mylog_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/stretchr/testify/require"
)

func TestToLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, mylog.ToLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, mylog.ToLogLevel("warn"))
	require.Equal(t, slog.LevelError, mylog.ToLogLevel("error"))
	require.Equal(t, slog.LevelInfo, mylog.ToLogLevel("verbose"))
}

func TestJSONHandlerWritesErrAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := mylog.NewLoggerWithWriter(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Error("dispatch failed", mylog.Err(errors.New("boom")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "dispatch failed", line["msg"])
	require.Equal(t, "boom", line["err"])
}
