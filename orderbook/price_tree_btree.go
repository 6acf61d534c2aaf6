package orderbook

import (
	"github.com/SlavaShishkanu/Order-book-test-task/domain"

	"github.com/google/btree"
)

// BTreePriceTree keeps entries in an in-memory B-tree ordered by ascending
// price. It trades the red-black tree's pointer chasing for wider nodes,
// which pays off on deep books with long walks.
type BTreePriceTree struct {
	tree *btree.BTreeG[*domain.Entry]
}

// Ensure BTreePriceTree implements PriceTreeInterface
var _ PriceTreeInterface = (*BTreePriceTree)(nil)

// NewBTreePriceTree creates an empty B-tree of the given degree
func NewBTreePriceTree(degree int) *BTreePriceTree {
	return &BTreePriceTree{
		tree: btree.NewG(degree, func(a, b *domain.Entry) bool {
			return a.Price < b.Price
		}),
	}
}

func (bt *BTreePriceTree) Put(entry *domain.Entry) {
	bt.tree.ReplaceOrInsert(entry)
}

func (bt *BTreePriceTree) Get(price int64) (*domain.Entry, bool) {
	return bt.tree.Get(pivot(price))
}

func (bt *BTreePriceTree) Descend(fn func(entry *domain.Entry) bool) {
	bt.tree.Descend(fn)
}

func (bt *BTreePriceTree) Ascend(fn func(entry *domain.Entry) bool) {
	bt.tree.Ascend(fn)
}

func (bt *BTreePriceTree) DescendFrom(from int64, fn func(entry *domain.Entry) bool) {
	bt.tree.DescendLessOrEqual(pivot(from), fn)
}

func (bt *BTreePriceTree) AscendFrom(from int64, fn func(entry *domain.Entry) bool) {
	bt.tree.AscendGreaterOrEqual(pivot(from), fn)
}

func (bt *BTreePriceTree) Clear() {
	bt.tree.Clear(false)
}

func (bt *BTreePriceTree) Size() int {
	return bt.tree.Len()
}

// pivot builds a lookup key; only Price takes part in ordering
func pivot(price int64) *domain.Entry {
	return &domain.Entry{Price: price}
}
