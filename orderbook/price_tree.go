package orderbook

import (
	"github.com/SlavaShishkanu/Order-book-test-task/domain"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// RedBlackPriceTree keeps entries in a red-black tree ordered by price,
// highest first. The tree's in-order walk is the book's master ordering;
// the ask side is served by walking the same tree backwards.
//
// Performance:
//   - Put / Get: O(log n)
//   - Descend / Ascend from a price: O(log n) to position, O(1) per step
type RedBlackPriceTree struct {
	tree *rbt.Tree[int64, *domain.Entry]
}

// Ensure RedBlackPriceTree implements PriceTreeInterface
var _ PriceTreeInterface = (*RedBlackPriceTree)(nil)

// NewRedBlackPriceTree creates an empty tree ordered by descending price
func NewRedBlackPriceTree() *RedBlackPriceTree {
	descending := func(a, b int64) int {
		if a > b {
			return -1
		} else if a < b {
			return 1
		}
		return 0
	}
	return &RedBlackPriceTree{
		tree: rbt.NewWith[int64, *domain.Entry](descending),
	}
}

// Put replaces any entry at the same price; the old entry is discarded, not merged
func (pt *RedBlackPriceTree) Put(entry *domain.Entry) {
	pt.tree.Put(entry.Price, entry)
}

func (pt *RedBlackPriceTree) Get(price int64) (*domain.Entry, bool) {
	return pt.tree.Get(price)
}

func (pt *RedBlackPriceTree) Descend(fn func(entry *domain.Entry) bool) {
	it := pt.tree.Iterator()
	for it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}

func (pt *RedBlackPriceTree) Ascend(fn func(entry *domain.Entry) bool) {
	it := pt.tree.Iterator()
	it.End()
	for it.Prev() {
		if !fn(it.Value()) {
			return
		}
	}
}

// DescendFrom walks toward lower prices. In a descending tree the floor of
// a key is the greatest node ordered before or at it, i.e. the lowest
// stored price >= from, so the walk starts at the ceiling instead.
func (pt *RedBlackPriceTree) DescendFrom(from int64, fn func(entry *domain.Entry) bool) {
	node, found := pt.tree.Ceiling(from)
	if !found {
		return
	}
	it := pt.tree.IteratorAt(node)
	for {
		if !fn(it.Value()) {
			return
		}
		if !it.Next() {
			return
		}
	}
}

func (pt *RedBlackPriceTree) AscendFrom(from int64, fn func(entry *domain.Entry) bool) {
	node, found := pt.tree.Floor(from)
	if !found {
		return
	}
	it := pt.tree.IteratorAt(node)
	for {
		if !fn(it.Value()) {
			return
		}
		if !it.Prev() {
			return
		}
	}
}

func (pt *RedBlackPriceTree) Clear() {
	pt.tree.Clear()
}

func (pt *RedBlackPriceTree) Size() int {
	return pt.tree.Size()
}
