// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/copurchase/internal/config"
	"github.com/tomtom215/copurchase/internal/recommend"
)

type mineOptions struct {
	minSupport float64
	dryRun     bool
	output     string
}

func newMineCmd(root *rootOptions) *cobra.Command {
	opts := &mineOptions{}

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Run one mining pass over the event log",
		Long: `Run one mining pass: read purchase events, count frequent items and
pairs, and append the generated rules to the repository.

With --dry-run the rules are printed instead of written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}

			var override func(*config.Config)
			if cmd.Flags().Changed("min-support") {
				override = func(cfg *config.Config) {
					cfg.Mining.MinSupport = opts.minSupport
				}
			}

			a, err := openApp(root, cmd.ErrOrStderr(), override)
			if err != nil {
				return err
			}
			defer a.Close()

			return runMine(cmd, a, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.minSupport, "min-support", 0, "Override mining.min_support, strictly between 0 and 1")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the rules without writing them")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func runMine(cmd *cobra.Command, a *app, opts *mineOptions) error {
	out := cmd.OutOrStdout()

	if opts.dryRun {
		result, summary, err := a.engine.Preview(cmd.Context())
		if err != nil {
			return fmt.Errorf("mine: %w", err)
		}
		if opts.output == outputJSON {
			return writeJSON(out, result)
		}
		writeSummary(out, summary)
		return writeRulesTable(out, result.Rules)
	}

	summary, err := a.engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("mine: %w", err)
	}
	if opts.output == outputJSON {
		return writeJSON(out, summary)
	}
	writeSummary(out, summary)
	return nil
}

func writeSummary(w io.Writer, s *recommend.RunSummary) {
	fmt.Fprintf(w, "run %s: %d events, %d sessions, %d frequent items, %d frequent pairs, %d rules",
		s.RunID, s.Events, s.Sessions, s.FrequentItems, s.FrequentPairs, s.Rules)
	if s.Persisted {
		fmt.Fprint(w, " (written)")
	}
	fmt.Fprintln(w)
}
