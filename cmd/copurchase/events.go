// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/copurchase/internal/database"
	"github.com/tomtom215/copurchase/internal/logging"
)

const (
	defaultImportBatchSize = 1000

	// maxImportLineBytes bounds a single JSON line.
	maxImportLineBytes = 1 << 20
)

func newEventsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage the purchase event log",
	}
	cmd.AddCommand(newEventsImportCmd(root), newEventsCountCmd(root))
	return cmd
}

type importOptions struct {
	batchSize int
}

func newEventsImportCmd(root *rootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import JSON-lines purchase events (use - for stdin)",
		Long: `Import purchase events, one JSON object per line:

  {"session_id":"s1","content_id":"sku-1","event":"buy","created":"2026-01-02T03:04:05Z"}

session_id and content_id (or item_id) may be strings or integers. A missing
event defaults to mining.event_type. Each batch is inserted in one
transaction; a malformed line aborts the import before its batch is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.batchSize < 1 {
				return fmt.Errorf("--batch-size must be positive")
			}

			a, err := openApp(root, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			in, closeIn, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer closeIn()

			total, err := importEvents(cmd.Context(), a.db, in, a.cfg.Mining.EventType, opts.batchSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d events\n", total)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.batchSize, "batch-size", defaultImportBatchSize, "Events per insert transaction")
	return cmd
}

func newEventsCountCmd(root *rootOptions) *cobra.Command {
	var eventType string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count events of the configured purchase type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(root, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if eventType == "" {
				eventType = a.cfg.Mining.EventType
			}
			n, err := a.db.CountEvents(cmd.Context(), eventType)
			if err != nil {
				return fmt.Errorf("count events: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "event-type", "", "Event type to count (default mining.event_type)")
	return cmd
}

// eventInserter is the write side of *database.DB used by the importer.
type eventInserter interface {
	InsertEvents(ctx context.Context, events []database.PurchaseEvent) (int, error)
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Failed to close import file")
		}
	}, nil
}

// flexibleID is an identifier that may arrive as a JSON string or integer.
// Integers are stored in their decimal form.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("identifier must be a string or integer, got %s", data)
	}
	*id = flexibleID(strconv.FormatInt(n, 10))
	return nil
}

// importRecord is one decoded input line. item_id is accepted as an alias
// for content_id.
type importRecord struct {
	SessionID flexibleID `json:"session_id"`
	ContentID flexibleID `json:"content_id"`
	ItemID    flexibleID `json:"item_id"`
	Event     string     `json:"event"`
	Created   time.Time  `json:"created"`
}

func (r importRecord) purchaseEvent(defaultEvent string) database.PurchaseEvent {
	ev := database.PurchaseEvent{
		SessionID: string(r.SessionID),
		ContentID: string(r.ContentID),
		Event:     r.Event,
		Created:   r.Created,
	}
	if ev.ContentID == "" {
		ev.ContentID = string(r.ItemID)
	}
	if ev.Event == "" {
		ev.Event = defaultEvent
	}
	return ev
}

// importEvents decodes JSON lines from r and inserts them in batches.
// Blank lines are skipped. Returns the number of events inserted.
func importEvents(ctx context.Context, db eventInserter, r io.Reader, defaultEvent string, batchSize int) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineBytes)

	var (
		total int
		line  int
		batch = make([]database.PurchaseEvent, 0, batchSize)
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := db.InsertEvents(ctx, batch)
		if err != nil {
			return fmt.Errorf("insert batch ending at line %d: %w", line, err)
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec importRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return total, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, rec.purchaseEvent(defaultEvent))

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return total, fmt.Errorf("read input: %w", err)
	}
	if err := flush(); err != nil {
		return total, err
	}

	logging.Info().Int("events", total).Int("lines", line).Msg("Import complete")
	return total, nil
}
