package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moguls753/lsm-bench/internal/runner"
)

func getLatencyCommand() *cobra.Command {
	return reportCommand("latency", "Plot get latency against database size for each dataset", (*runner.Runner).Latency)
}

func getRangeCommand() *cobra.Command {
	return reportCommand("range", "Plot range latency and blocks read against range width", (*runner.Runner).Range)
}

func getThroughputCommand() *cobra.Command {
	return reportCommand("throughput", "Plot requests per second against the number of clients", (*runner.Runner).Throughput)
}

func reportCommand(use, short string, report func(*runner.Runner, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), global)
			if err != nil {
				return err
			}

			r, err := runner.New(cfg, cmd.OutOrStdout(), newLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			return report(r, cmd.Context())
		},
	}
}
