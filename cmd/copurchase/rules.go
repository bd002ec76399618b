// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/copurchase/internal/database"
)

type rulesOptions struct {
	source string
	limit  int
	output string
}

func newRulesCmd(root *rootOptions) *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List persisted rules, newest batch first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			if opts.limit < 1 || opts.limit > database.MaxRuleLimit {
				return fmt.Errorf("--limit must be between 1 and %d", database.MaxRuleLimit)
			}

			a, err := openApp(root, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			rules, err := a.repo.ListRules(cmd.Context(), database.RuleFilter{
				Source: opts.source,
				Limit:  opts.limit,
			})
			if err != nil {
				return fmt.Errorf("list rules: %w", err)
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rules)
			}
			return writeRulesTable(cmd.OutOrStdout(), rules)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "Only rules whose antecedent is this item")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", database.DefaultRuleLimit, "Maximum number of rules")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}
