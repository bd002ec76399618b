// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/copurchase/internal/logging"
)

// mockCloser implements io.Closer for testing
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestCloseWithLog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	t.Run("nil closer does not panic", func(t *testing.T) {
		buf.Reset()
		closeWithLog(nil, "test")
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for nil closer, got: %s", buf.String())
		}
	})

	t.Run("successful close does not log", func(t *testing.T) {
		buf.Reset()
		closer := &mockCloser{}
		closeWithLog(closer, "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for successful close, got: %s", buf.String())
		}
	})

	t.Run("error during close is logged", func(t *testing.T) {
		buf.Reset()
		closer := &mockCloser{err: errors.New("close failed")}
		closeWithLog(closer, "prepared statement")

		output := buf.String()
		if !strings.Contains(output, "prepared statement") || !strings.Contains(output, "close failed") {
			t.Errorf("Expected close error to be logged, got: %s", output)
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	closeQuietly(nil)

	closer := &mockCloser{err: errors.New("ignored")}
	closeQuietly(closer)
	if !closer.closed {
		t.Error("Expected closer to be closed")
	}
}
