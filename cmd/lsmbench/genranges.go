package main

import (
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/moguls753/lsm-bench/internal/rangegen"
)

func getGenRangesCommand() *cobra.Command {
	var (
		count  int
		span   int64
		seed   uint64
		wire   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "genranges",
		Short: "Generate random range commands of a fixed width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return errors.Newf("count must not be negative, got %d", count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			g, err := rangegen.New(span, seed)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			var f *os.File
			if output != "" && output != "-" {
				f, err = os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "create %s", output)
				}
				defer f.Close()
				w = f
			}

			if err := g.Write(w, count, wire); err != nil {
				return err
			}
			if f != nil {
				if err := f.Close(); err != nil {
					return errors.Wrapf(err, "close %s", output)
				}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&count, "count", 100, "number of range commands")
	fs.Int64Var(&span, "span", rangegen.DefaultSpan, "width of every range (end - start)")
	fs.Uint64Var(&seed, "seed", 0, "random seed (default: time based)")
	fs.BoolVar(&wire, "binary", false, "write the binary wire form instead of text")
	fs.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
