// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"database/sql"
	"errors"
	"io"

	"github.com/tomtom215/copurchase/internal/logging"
)

// ErrClosed is returned by operations on a DB whose connection has been closed.
var ErrClosed = errors.New("database connection is closed")

// closeWithLog closes a resource and logs any error.
// Use this for cleanup where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// rollbackOnError rolls tx back when *errp is non-nil after the caller returns.
func rollbackOnError(tx *sql.Tx, errp *error) {
	if *errp == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		logging.Error().
			Err(rbErr).
			AnErr("original_error", *errp).
			Msg("Transaction rollback failed")
	}
}
