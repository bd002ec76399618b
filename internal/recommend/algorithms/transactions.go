// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"github.com/tomtom215/copurchase/internal/recommend"
)

// GroupTransactions groups events by session id.
//
// Items keep their encounter order and duplicates are preserved. An event
// with an empty session or item id fails the whole batch with a
// *recommend.ValidationError; nothing is dropped silently.
//
//nolint:gocritic // rangeValCopy: Event is two strings
func GroupTransactions(events []recommend.Event) (recommend.Transactions, error) {
	tx := make(recommend.Transactions)

	for i, ev := range events {
		if ev.SessionID == "" {
			return nil, &recommend.ValidationError{Index: i, Field: "session_id"}
		}
		if ev.ItemID == "" {
			return nil, &recommend.ValidationError{Index: i, Field: "content_id"}
		}
		tx[ev.SessionID] = append(tx[ev.SessionID], ev.ItemID)
	}

	return tx, nil
}
