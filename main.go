package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlavaShishkanu/Order-book-test-task/config"
	"github.com/SlavaShishkanu/Order-book-test-task/engine"
	"github.com/SlavaShishkanu/Order-book-test-task/logging"
	"github.com/SlavaShishkanu/Order-book-test-task/metrics"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
	"github.com/SlavaShishkanu/Order-book-test-task/protocol"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run processes one command file and returns the process exit code
func run(args []string) int {
	cfg, cfgErr := config.Load(args)
	logger := logging.NewLogger(cfg)
	if cfgErr != nil {
		logger.Error().Err(cfgErr).Msg("load config")
		return 1
	}

	treeType, err := orderbook.ParsePriceTreeType(cfg.Book.Index)
	if err != nil {
		logger.Error().Err(err).Msg("invalid book index")
		return 1
	}

	in, err := os.Open(cfg.IO.Input)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.IO.Input).Msg("open input")
		return 1
	}
	defer in.Close()

	out, err := os.Create(cfg.IO.Output)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.IO.Output).Msg("create output")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(logger)
	book := orderbook.NewOrderBookWithType(treeType)
	eng := engine.NewEngine(book, protocol.NewSink(out), m, logger)

	logger.Info().
		Str("input", cfg.IO.Input).
		Str("output", cfg.IO.Output).
		Stringer("index", treeType).
		Msg("processing commands")

	start := time.Now()
	stats, runErr := eng.Run(ctx, in)
	if err := out.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("%w: close %s: %w", protocol.ErrWrite, cfg.IO.Output, err))
	}

	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn().Err(err).Msg("write metrics")
	}

	logger.Info().
		Int("lines", stats.Lines).
		Int("commands", stats.Commands).
		Int("updates", stats.Updates).
		Int("queries", stats.Queries).
		Int("orders", stats.Orders).
		Int64("consumed", stats.Consumed).
		Int("levels", book.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("run finished")

	if runErr != nil {
		logger.Error().Err(runErr).Msg("run aborted")
		return 1
	}
	return 0
}
