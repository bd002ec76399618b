// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"github.com/spf13/cobra"
)

// rootOptions are flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "copurchase",
		Short:         "copurchase - session-based association rule mining",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newMineCmd(opts),
		newRulesCmd(opts),
		newEventsCmd(opts),
	)
	return cmd
}
