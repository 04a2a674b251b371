// Command mapbench maps fixture records in bulk through the mapper and
// reports timing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/mapper/internal/bench"
	"github.com/zoobzio/mapper/internal/codec"
	"github.com/zoobzio/mapper/internal/log"
	mappertest "github.com/zoobzio/mapper/testing"
)

var release = "v0.1.0"

type options struct {
	bench    bench.Config
	logLevel string
	logFile  string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mapbench",
		Short:         "mapbench: bulk mapping benchmark for the mapper package.",
		Version:       release,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newFixtureCmd())
	return root
}

func newRunCmd() *cobra.Command {
	opts := options{bench: bench.Config{Count: 10000, Workers: 1, Format: "json"}}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Map SimpleModel records to SimpleOutput and report timing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := log.New(log.Config{Level: opts.logLevel, File: opts.logFile})
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			res, err := bench.Run(cmd.Context(), opts.bench, logger)
			if err != nil {
				logger.Error("run failed", zap.String("run_id", res.RunID), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s mapped=%d duration=%s per_record=%s\n",
				res.RunID, res.Mapped, res.Duration, res.PerRecord())
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.bench.Count, "count", "n", opts.bench.Count, "records to generate when --input is not set")
	f.IntVarP(&opts.bench.Workers, "workers", "w", opts.bench.Workers, "worker pool size")
	f.StringVarP(&opts.bench.Input, "input", "i", "", "fixture file of source records")
	f.StringVarP(&opts.bench.Output, "output", "o", "", "write mapped records to this file")
	f.StringVarP(&opts.bench.Format, "format", "f", opts.bench.Format, "file format: "+strings.Join(codec.Names(), ", "))
	f.BoolVar(&opts.bench.Verify, "verify", false, "check every output against a copier reference")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&opts.logFile, "log-file", "", "also log to this rotated file")
	return cmd
}

func newFixtureCmd() *cobra.Command {
	var (
		count  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "fixture PATH",
		Short: "Write generated SimpleModel records to PATH for use with run --input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			return bench.WriteFixture(args[0], format, mappertest.Models(count, time.Now()))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10000, "records to generate")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "file format: "+strings.Join(codec.Names(), ", "))
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "mapbench:", err)
		stop()
		os.Exit(1)
	}
}
