package orderbook

import (
	"github.com/SlavaShishkanu/Order-book-test-task/domain"
)

// IOrderBook defines the interface for an order book
type IOrderBook interface {
	// Update inserts or replaces the entry at entry.Price
	Update(entry domain.Entry)

	// BestBid returns the highest non-empty bid or the zero sentinel
	BestBid() domain.Entry

	// BestAsk returns the lowest non-empty ask or the zero sentinel
	BestAsk() domain.Entry

	// EntryAtPrice returns the entry at price or a sentinel for that price
	EntryAtPrice(price int64) domain.Entry

	// OrderBuy removes size shares out of asks, cheapest first
	OrderBuy(size int64) ([]domain.Fill, error)

	// OrderSell removes size shares out of bids, most expensive first
	OrderSell(size int64) ([]domain.Fill, error)
}

// OrderBook is a single-instrument book holding one entry per price.
// Lock-free design: owned by the single goroutine that runs the command
// loop. Consuming orders read then mutate several levels and are not
// atomic with respect to other callers.
type OrderBook struct {
	entries PriceTreeInterface
}

// NewOrderBook creates an empty book on the default price tree
func NewOrderBook() *OrderBook {
	return NewOrderBookWithType(RedBlackType)
}

// NewOrderBookWithType creates an empty book on the given price tree
func NewOrderBookWithType(treeType PriceTreeType) *OrderBook {
	return &OrderBook{
		entries: NewPriceTreeWithType(treeType),
	}
}

// Update stores a copy of entry, fully replacing whatever was at its price.
// A zero size does not remove the level. Sizes are expected to be
// non-negative; consuming orders treat a negative size as an empty level.
func (ob *OrderBook) Update(entry domain.Entry) {
	stored := entry
	ob.entries.Put(&stored)
}

// AddAll applies Update to every entry in order
func (ob *OrderBook) AddAll(entries []domain.Entry) {
	for _, e := range entries {
		ob.Update(e)
	}
}

func (ob *OrderBook) BestBid() domain.Entry {
	if best := ob.bestBid(); best != nil {
		return *best
	}
	return domain.Sentinel(0)
}

func (ob *OrderBook) BestAsk() domain.Entry {
	if best := ob.bestAsk(); best != nil {
		return *best
	}
	return domain.Sentinel(0)
}

func (ob *OrderBook) EntryAtPrice(price int64) domain.Entry {
	if e, ok := ob.entries.Get(price); ok {
		return *e
	}
	return domain.Sentinel(price)
}

// OrderBuy walks from the best ask toward higher prices
func (ob *OrderBook) OrderBuy(size int64) ([]domain.Fill, error) {
	if size <= 0 {
		return nil, nil
	}
	best := ob.bestAsk()
	if best == nil {
		return nil, &InsufficientLiquidityError{Side: domain.SideBuy, Requested: size, Unfilled: size}
	}
	c := consumer{side: domain.SideBuy, remaining: size}
	ob.entries.AscendFrom(best.Price, c.take)
	return c.result(size)
}

// OrderSell walks from the best bid toward lower prices
func (ob *OrderBook) OrderSell(size int64) ([]domain.Fill, error) {
	if size <= 0 {
		return nil, nil
	}
	best := ob.bestBid()
	if best == nil {
		return nil, &InsufficientLiquidityError{Side: domain.SideSell, Requested: size, Unfilled: size}
	}
	c := consumer{side: domain.SideSell, remaining: size}
	ob.entries.DescendFrom(best.Price, c.take)
	return c.result(size)
}

// Clear removes every entry
func (ob *OrderBook) Clear() {
	ob.entries.Clear()
}

// Entries returns copies of all entries, price descending
func (ob *OrderBook) Entries() []domain.Entry {
	out := make([]domain.Entry, 0, ob.entries.Size())
	ob.entries.Descend(func(e *domain.Entry) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// Size returns the number of price levels held
func (ob *OrderBook) Size() int {
	return ob.entries.Size()
}

func (ob *OrderBook) bestBid() *domain.Entry {
	var best *domain.Entry
	ob.entries.Descend(func(e *domain.Entry) bool {
		if e.Class == domain.ClassBid && e.Size != 0 {
			best = e
			return false
		}
		return true
	})
	return best
}

func (ob *OrderBook) bestAsk() *domain.Entry {
	var best *domain.Entry
	ob.entries.Ascend(func(e *domain.Entry) bool {
		if e.Class == domain.ClassAsk && e.Size != 0 {
			best = e
			return false
		}
		return true
	})
	return best
}

// consumer reduces levels in walk order until the demand is met.
// Every level met on the walk is taken from, whatever its class;
// empty or negative levels contribute nothing and are left as they are.
type consumer struct {
	side      domain.Side
	remaining int64
	fills     []domain.Fill
}

func (c *consumer) take(e *domain.Entry) bool {
	if e.Size <= 0 {
		return true
	}
	if c.remaining < e.Size {
		e.Size -= c.remaining
		c.fill(e, c.remaining)
		c.remaining = 0
		return false
	}
	c.fill(e, e.Size)
	c.remaining -= e.Size
	e.Size = 0
	return c.remaining > 0
}

func (c *consumer) fill(e *domain.Entry, size int64) {
	c.fills = append(c.fills, domain.Fill{Side: c.side, Price: e.Price, Size: size, Class: e.Class})
}

func (c *consumer) result(requested int64) ([]domain.Fill, error) {
	if c.remaining > 0 {
		return c.fills, &InsufficientLiquidityError{Side: c.side, Requested: requested, Unfilled: c.remaining}
	}
	return c.fills, nil
}
