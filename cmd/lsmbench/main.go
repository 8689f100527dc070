// lsmbench turns the JSON files recorded by the LSM-tree storage server's
// benchmark clients into console tables, CSV files, Postgres rows and charts,
// and generates range-command files for the benchmark client.
//
//	lsmbench latency    database size vs get latency, before/after comparison
//	lsmbench range      range width vs range latency and blocks read
//	lsmbench throughput client count vs requests per second
//	lsmbench genranges  random fixed-width range commands
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lsmbench",
	Short: "LSM-tree benchmark data tools",
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags(), &global)

	rootCmd.AddCommand(getLatencyCommand())
	rootCmd.AddCommand(getRangeCommand())
	rootCmd.AddCommand(getThroughputCommand())
	rootCmd.AddCommand(getGenRangesCommand())
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
