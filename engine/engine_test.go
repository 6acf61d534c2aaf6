package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShishkanu/Order-book-test-task/metrics"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
	"github.com/SlavaShishkanu/Order-book-test-task/protocol"
)

const seed = `u,99,0,ask
u,98,50,ask
u,97,0,spread
u,96,0,spread
u,95,40,bid
u,94,30,bid
u,93,0,bid
u,92,77,bid
`

type fixture struct {
	engine  *Engine
	book    *orderbook.OrderBook
	out     *bytes.Buffer
	metrics *metrics.Metrics
}

func newFixture(treeType orderbook.PriceTreeType) *fixture {
	out := &bytes.Buffer{}
	book := orderbook.NewOrderBookWithType(treeType)
	m := metrics.New(zerolog.Nop())
	return &fixture{
		engine:  NewEngine(book, protocol.NewSink(out), m, zerolog.Nop()),
		book:    book,
		out:     out,
		metrics: m,
	}
}

func TestRunScenario(t *testing.T) {
	for _, tt := range []orderbook.PriceTreeType{orderbook.RedBlackType, orderbook.BTreeType} {
		t.Run(tt.String(), func(t *testing.T) {
			f := newFixture(tt)
			input := seed + `q,best_bid
q,best_ask

o,sell,5
q,best_bid
q,size,95
o,buy,50
q,best_ask
q,size,100500
o,sell,0
`
			stats, err := f.engine.Run(context.Background(), strings.NewReader(input))
			require.NoError(t, err)

			assert.Equal(t, "95,40\n98,50\n95,35\n35\n0,0\n0\n", f.out.String())
			assert.Equal(t, Stats{Lines: 18, Commands: 17, Updates: 8, Queries: 6, Orders: 3, Consumed: 55}, stats)
		})
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	f := newFixture(orderbook.RedBlackType)
	_, err := f.engine.Run(context.Background(), strings.NewReader(seed+"o,sell,50\nq,best_bid\no,buy,60\n"))
	require.Error(t, err)

	m := f.metrics
	assert.Equal(t, float64(8), testutil.ToFloat64(m.CommandsTotal.WithLabelValues("update")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CommandsTotal.WithLabelValues("best_bid")))
	assert.Equal(t, float64(50), testutil.ToFloat64(m.ConsumedUnitsTotal.WithLabelValues("sell")))
	assert.Equal(t, float64(50), testutil.ToFloat64(m.ConsumedUnitsTotal.WithLabelValues("buy")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LiquidityErrorsTotal.WithLabelValues("buy")))
	assert.Equal(t, float64(8), testutil.ToFloat64(m.PriceLevels))
}

// TestRunAbortsOnLiquidityError output of earlier queries survives the abort
func TestRunAbortsOnLiquidityError(t *testing.T) {
	f := newFixture(orderbook.RedBlackType)
	input := seed + "q,best_bid\no,sell,149\nq,best_bid\n"

	stats, err := f.engine.Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, orderbook.ErrNoBidsAvailable)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 10, cmdErr.Line)
	assert.Equal(t, "o,sell,149", cmdErr.Text)
	assert.Equal(t, "C10", cmdErr.ID)

	assert.Equal(t, "95,40\n", f.out.String())
	assert.Equal(t, 10, stats.Lines)
	assert.Equal(t, int64(147), stats.Consumed)
	assert.Zero(t, f.book.BestBid().Size, "consumed levels are not rolled back")
}

func TestRunAbortsOnMalformedCommand(t *testing.T) {
	f := newFixture(orderbook.RedBlackType)
	input := "u,10,5,bid\nq,best_bid\nu,11,5,offer\nq,best_bid\n"

	_, err := f.engine.Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrMalformedCommand)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.Line)
	assert.Contains(t, err.Error(), "u,11,5,offer")

	assert.Equal(t, "10,5\n", f.out.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.MalformedCommandsTotal))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestRunReadFailure(t *testing.T) {
	f := newFixture(orderbook.RedBlackType)
	_, err := f.engine.Run(context.Background(), failingReader{})
	assert.ErrorIs(t, err, ErrRead)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunWriteFailure(t *testing.T) {
	m := metrics.New(zerolog.Nop())
	e := NewEngine(orderbook.NewOrderBook(), protocol.NewSink(failingWriter{}), m, zerolog.Nop())

	_, err := e.Run(context.Background(), strings.NewReader("q,best_bid\n"))
	assert.ErrorIs(t, err, protocol.ErrWrite)
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(orderbook.RedBlackType)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := f.engine.Run(ctx, strings.NewReader(seed))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Commands)
	assert.Zero(t, f.book.Size())
}

func TestRunLogsFailure(t *testing.T) {
	var logs bytes.Buffer
	m := metrics.New(zerolog.Nop())
	e := NewEngine(orderbook.NewOrderBook(), protocol.NewSink(&bytes.Buffer{}), m, zerolog.New(&logs))

	_, err := e.Run(context.Background(), strings.NewReader("o,buy,1\n"))
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"cmd_id":"C1"`)
	assert.Contains(t, logs.String(), "command failed")
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator("T")
	assert.Equal(t, "T1", g.Next())
	assert.Equal(t, "T2", g.Next())
	assert.Equal(t, uint64(2), g.Count())
}
