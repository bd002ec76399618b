// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedHandler() (*SlogHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogHandlerWithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	prev := GetLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	h, buf := newBufferedHandler()
	logger := slog.New(h)

	logger.Warn("service restarted", "service", "mining-service", "attempt", 3)

	output := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"mining-service"`, `"attempt":3`, "service restarted"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	h, buf := newBufferedHandler()
	logger := slog.New(h).With("supervisor", "root").WithGroup("event")

	logger.Info("terminated", "reason", "timeout")

	output := buf.String()
	if !strings.Contains(output, `"supervisor":"root"`) {
		t.Errorf("output missing pre-configured attr: %s", output)
	}
	if !strings.Contains(output, `"event.reason":"timeout"`) {
		t.Errorf("output missing grouped attr: %s", output)
	}
}

func TestSlogHandler_WithGroup_Empty(t *testing.T) {
	h, _ := newBufferedHandler()
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestAddAttr_AllTypes(t *testing.T) {
	h, buf := newBufferedHandler()
	logger := slog.New(h)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	logger.Info("types",
		slog.String("s", "v"),
		slog.Int64("i", -4),
		slog.Uint64("u", 4),
		slog.Float64("f", 0.5),
		slog.Bool("b", true),
		slog.Duration("d", time.Second),
		slog.Time("t", at),
		slog.Any("err", errors.New("boom")),
		slog.Group("g", slog.String("inner", "x")),
	)

	output := buf.String()
	for _, want := range []string{
		`"s":"v"`, `"i":-4`, `"u":4`, `"f":0.5`, `"b":true`,
		`"d":1000`, `"t":"2026-01-02T03:04:05Z"`, `"err":"boom"`, `"g.inner":"x"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	if NewSlogLogger() == nil {
		t.Fatal("NewSlogLogger() returned nil")
	}
}
