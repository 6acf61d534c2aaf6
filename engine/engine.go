package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SlavaShishkanu/Order-book-test-task/domain"
	"github.com/SlavaShishkanu/Order-book-test-task/metrics"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
	"github.com/SlavaShishkanu/Order-book-test-task/protocol"
)

// ErrRead matches failures of the command source
var ErrRead = errors.New("read input")

// CommandError identifies the line that aborted a run
type CommandError struct {
	Line int
	ID   string
	Text string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d (%s) %q: %v", e.Line, e.ID, e.Text, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Stats summarizes a run
type Stats struct {
	Lines    int
	Commands int
	Updates  int
	Queries  int
	Orders   int
	// Consumed is the total size removed by orders
	Consumed int64
}

// Engine runs the command loop for ONE book.
// Architecture:
//   - A single goroutine reads, decodes and executes commands in input order
//   - Each command, including its output write, completes before the next
//     line is read, so the book needs no locking
//   - The first failing command aborts the run; output written so far is
//     flushed
type Engine struct {
	book    *orderbook.OrderBook
	sink    *protocol.Sink
	handler *protocol.Handler
	metrics *metrics.Metrics
	logger  zerolog.Logger
	ids     *IDGenerator
}

// NewEngine binds a book to an output sink
func NewEngine(book *orderbook.OrderBook, sink *protocol.Sink, m *metrics.Metrics, logger zerolog.Logger) *Engine {
	return &Engine{
		book:    book,
		sink:    sink,
		handler: protocol.NewHandler(book, sink),
		metrics: m,
		logger:  logger,
		ids:     NewIDGenerator("C"),
	}
}

// Run processes src line by line until EOF, the first error or ctx
// cancellation, which is checked between lines. The sink is always flushed.
func (e *Engine) Run(ctx context.Context, src io.Reader) (Stats, error) {
	stats, err := e.run(ctx, src)
	if flushErr := e.sink.Flush(); flushErr != nil {
		err = errors.Join(err, flushErr)
	}
	return stats, err
}

func (e *Engine) run(ctx context.Context, src io.Reader) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := e.process(stats.Lines, text, &stats); err != nil {
			return stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return stats, nil
}

func (e *Engine) process(line int, text string, stats *Stats) error {
	id := e.ids.Next()
	fail := func(err error) error {
		e.logger.Error().Err(err).Int("line", line).Str("cmd_id", id).Str("command", text).Msg("command failed")
		return &CommandError{Line: line, ID: id, Text: strings.TrimSpace(text), Err: err}
	}

	res, err := e.handler.Handle(text)
	if errors.Is(err, protocol.ErrMalformedCommand) {
		e.metrics.MalformedCommandsTotal.Inc()
		return fail(err)
	}

	e.logger.Debug().Str("cmd_id", id).Int("line", line).Stringer("kind", res.Command.Kind).Msg("command executed")
	e.record(id, res, err, stats)
	if err != nil {
		return fail(err)
	}
	return nil
}

// record updates stats, metrics and logs for one executed command
func (e *Engine) record(id string, res protocol.Result, err error, stats *Stats) {
	cmd := res.Command
	stats.Commands++
	e.metrics.CommandsTotal.WithLabelValues(cmd.Kind.String()).Inc()

	switch {
	case cmd.Kind == protocol.KindUpdate:
		stats.Updates++
		e.logger.Debug().Str("cmd_id", id).Object("entry", cmd.Entry).Msg("update")
		e.metrics.PriceLevels.Set(float64(e.book.Size()))
	case cmd.Kind.IsQuery():
		stats.Queries++
		if err == nil {
			e.logger.Debug().Str("cmd_id", id).Str("output", strings.TrimSpace(res.Output)).Msg("query")
		}
	case cmd.Kind.IsOrder():
		stats.Orders++
		side := orderSide(cmd.Kind)
		for _, f := range res.Fills {
			e.logger.Debug().Str("cmd_id", id).Object("fill", f).Msg("level consumed")
		}
		consumed := domain.TotalSize(res.Fills)
		stats.Consumed += consumed
		e.metrics.ConsumedUnitsTotal.WithLabelValues(side.String()).Add(float64(consumed))

		var liq *orderbook.InsufficientLiquidityError
		if errors.As(err, &liq) {
			e.metrics.LiquidityErrorsTotal.WithLabelValues(side.String()).Inc()
		}
	}
}

func orderSide(kind protocol.Kind) domain.Side {
	if kind == protocol.KindBuy {
		return domain.SideBuy
	}
	return domain.SideSell
}
