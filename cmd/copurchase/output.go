// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/copurchase/internal/recommend"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want %s or %s)", format, outputTable, outputJSON)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func writeRulesTable(w io.Writer, rules []recommend.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tCONFIDENCE\tSUPPORT\tCREATED")
	for i := range rules {
		r := &rules[i]
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n",
			r.Source, r.Target, r.Confidence, r.Support, r.Created.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
