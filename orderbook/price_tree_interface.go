package orderbook

import "github.com/SlavaShishkanu/Order-book-test-task/domain"

// PriceTreeInterface 定义价格树的接口
// An ordered index of entries keyed by price, at most one entry per price.
// Implementations hand out pointers to the stored entries so that consuming
// orders can reduce Size in place; callers must never change Price.
type PriceTreeInterface interface {
	// Put inserts the entry, replacing any entry stored at the same price
	Put(entry *domain.Entry)

	// Get returns the entry stored at price
	Get(price int64) (*domain.Entry, bool)

	// Descend visits entries from the highest price down until fn returns false
	Descend(fn func(entry *domain.Entry) bool)

	// Ascend visits entries from the lowest price up until fn returns false
	Ascend(fn func(entry *domain.Entry) bool)

	// DescendFrom visits entries with price <= from, highest first
	DescendFrom(from int64, fn func(entry *domain.Entry) bool)

	// AscendFrom visits entries with price >= from, lowest first
	AscendFrom(from int64, fn func(entry *domain.Entry) bool)

	// Clear removes every entry
	Clear()

	// Size returns the number of price levels
	Size() int
}
