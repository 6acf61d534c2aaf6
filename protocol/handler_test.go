package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShishkanu/Order-book-test-task/domain"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
)

// fakeBook records calls and returns canned answers
type fakeBook struct {
	updates   []domain.Entry
	bestBid   domain.Entry
	bestAsk   domain.Entry
	entries   map[int64]domain.Entry
	buys      []int64
	sells     []int64
	orderErr  error
	orderFill []domain.Fill
}

var _ orderbook.IOrderBook = (*fakeBook)(nil)

func (f *fakeBook) Update(e domain.Entry) {
	f.updates = append(f.updates, e)
}

func (f *fakeBook) BestBid() domain.Entry {
	return f.bestBid
}

func (f *fakeBook) BestAsk() domain.Entry {
	return f.bestAsk
}

func (f *fakeBook) EntryAtPrice(p int64) domain.Entry {
	if e, ok := f.entries[p]; ok {
		return e
	}
	return domain.Sentinel(p)
}

func (f *fakeBook) OrderBuy(size int64) ([]domain.Fill, error) {
	f.buys = append(f.buys, size)
	return f.orderFill, f.orderErr
}

func (f *fakeBook) OrderSell(size int64) ([]domain.Fill, error) {
	f.sells = append(f.sells, size)
	return f.orderFill, f.orderErr
}

// recordingWriter keeps every written line
type recordingWriter struct {
	lines []string
	err   error
}

func (w *recordingWriter) Write(output string) error {
	if w.err != nil {
		return w.err
	}
	w.lines = append(w.lines, output)
	return nil
}

func newTestHandler() (*Handler, *fakeBook, *recordingWriter) {
	book := &fakeBook{entries: map[int64]domain.Entry{}}
	w := &recordingWriter{}
	return NewHandler(book, w), book, w
}

func TestHandleUpdate(t *testing.T) {
	h, book, w := newTestHandler()

	for _, line := range []string{"u,9,1,bid", "u,11,5,ask", "u,11,5,spread", "u,11,5,ask  \n"} {
		_, err := h.Handle(line)
		require.NoError(t, err)
	}

	assert.Equal(t, []domain.Entry{
		domain.NewEntry(9, 1, domain.ClassBid),
		domain.NewEntry(11, 5, domain.ClassAsk),
		domain.NewEntry(11, 5, domain.ClassSpread),
		domain.NewEntry(11, 5, domain.ClassAsk),
	}, book.updates)
	assert.Empty(t, w.lines)
}

func TestHandleBestBid(t *testing.T) {
	h, book, w := newTestHandler()
	book.bestBid = domain.NewEntry(2, 3, domain.ClassBid)

	res, err := h.Handle("q,best_bid")
	require.NoError(t, err)
	assert.Equal(t, "2,3\n", res.Output)
	assert.Equal(t, []string{"2,3\n"}, w.lines)
}

func TestHandleBestAsk(t *testing.T) {
	h, book, w := newTestHandler()
	book.bestAsk = domain.NewEntry(3, 4, domain.ClassAsk)

	_, err := h.Handle("q,best_ask")
	require.NoError(t, err)
	assert.Equal(t, []string{"3,4\n"}, w.lines)
}

func TestHandleBestOnSentinel(t *testing.T) {
	h, book, w := newTestHandler()
	book.bestBid = domain.Sentinel(0)

	_, err := h.Handle("q,best_bid")
	require.NoError(t, err)
	assert.Equal(t, []string{"0,0\n"}, w.lines)
}

func TestHandleSize(t *testing.T) {
	h, book, w := newTestHandler()
	book.entries[10] = domain.NewEntry(10, 2, domain.ClassAsk)

	_, err := h.Handle("q,size,10")
	require.NoError(t, err)
	_, err = h.Handle("q,size,11")
	require.NoError(t, err)
	assert.Equal(t, []string{"2\n", "0\n"}, w.lines)
}

func TestHandleOrders(t *testing.T) {
	h, book, w := newTestHandler()
	book.orderFill = []domain.Fill{{Side: domain.SideBuy, Price: 10, Size: 1, Class: domain.ClassAsk}}

	res, err := h.Handle("o,buy,100500")
	require.NoError(t, err)
	assert.Equal(t, book.orderFill, res.Fills)
	assert.Empty(t, res.Output)

	_, err = h.Handle("o,sell,1")
	require.NoError(t, err)

	assert.Equal(t, []int64{100500}, book.buys)
	assert.Equal(t, []int64{1}, book.sells)
	assert.Empty(t, w.lines)
}

func TestHandleOrderErrorKeepsFills(t *testing.T) {
	h, book, _ := newTestHandler()
	book.orderFill = []domain.Fill{{Side: domain.SideSell, Price: 95, Size: 40, Class: domain.ClassBid}}
	book.orderErr = &orderbook.InsufficientLiquidityError{Side: domain.SideSell, Requested: 50, Unfilled: 10}

	res, err := h.Handle("o,sell,50")
	assert.ErrorIs(t, err, orderbook.ErrNoBidsAvailable)
	assert.Len(t, res.Fills, 1)
}

func TestHandleReturnsDecodedCommand(t *testing.T) {
	h, _, _ := newTestHandler()

	res, err := h.Handle("o,sell,7")
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: KindSell, Size: 7}, res.Command)

	res, err = h.Handle("q,size,10")
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: KindSize, Price: 10}, res.Command)
	assert.Equal(t, "0\n", res.Output)
}

func TestHandleMalformedDoesNotTouchBook(t *testing.T) {
	h, book, w := newTestHandler()

	_, err := h.Handle("u,9,1,offer")
	assert.ErrorIs(t, err, ErrMalformedCommand)
	assert.Empty(t, book.updates)
	assert.Empty(t, w.lines)
}

func TestHandleWriteFailure(t *testing.T) {
	h, _, w := newTestHandler()
	w.err = errors.New("disk full")

	_, err := h.Handle("q,best_bid")
	assert.EqualError(t, err, "disk full")
}

// TestHandlerWithRealBook runs the reference scenario end to end
func TestHandlerWithRealBook(t *testing.T) {
	var out bytes.Buffer
	sink := NewSink(&out)
	h := NewHandler(orderbook.NewOrderBook(), sink)

	lines := []string{
		"u,99,0,ask", "u,98,50,ask", "u,97,0,spread", "u,96,0,spread",
		"u,95,40,bid", "u,94,30,bid", "u,93,0,bid", "u,92,77,bid",
		"q,best_bid", "q,best_ask",
		"o,sell,5", "q,best_bid",
		"o,buy,50", "q,best_ask",
		"q,size,98", "q,size,1000",
	}
	for _, line := range lines {
		_, err := h.Handle(line)
		require.NoError(t, err, line)
	}
	require.NoError(t, sink.Flush())

	assert.Equal(t, "95,40\n98,50\n95,35\n0,0\n0\n0\n", out.String())
}
