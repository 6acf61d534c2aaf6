package orderbook

import "fmt"

// PriceTreeType 定义价格树的实现类型
type PriceTreeType int

const (
	// RedBlackType red-black tree (gods), the default
	// Performance: Put O(log n), best price O(log n), walk O(1) per level
	RedBlackType PriceTreeType = iota

	// BTreeType B-tree (google/btree)
	// Better cache locality on books with thousands of levels
	BTreeType
)

// defaultBTreeDegree keeps a node within a couple of cache lines of pointers
const defaultBTreeDegree = 16

var priceTreeNames = map[string]PriceTreeType{
	"rbtree": RedBlackType,
	"btree":  BTreeType,
}

// ParsePriceTreeType resolves a configuration name ("rbtree", "btree")
func ParsePriceTreeType(name string) (PriceTreeType, error) {
	if name == "" {
		return RedBlackType, nil
	}
	t, ok := priceTreeNames[name]
	if !ok {
		return RedBlackType, fmt.Errorf("unknown price tree type %q", name)
	}
	return t, nil
}

func (t PriceTreeType) String() string {
	if t == BTreeType {
		return "btree"
	}
	return "rbtree"
}

// NewPriceTreeWithType 根据类型创建价格树
func NewPriceTreeWithType(treeType PriceTreeType) PriceTreeInterface {
	switch treeType {
	case BTreeType:
		return NewBTreePriceTree(defaultBTreeDegree)
	case RedBlackType:
		fallthrough
	default:
		return NewRedBlackPriceTree()
	}
}
