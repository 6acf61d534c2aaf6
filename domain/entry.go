package domain

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Class represents the side classification of a price level
type Class int

const (
	// ClassNone marks a sentinel entry that is not stored in the book
	ClassNone Class = iota
	ClassBid
	ClassAsk
	ClassSpread
)

var classAliases = map[string]Class{
	"bid":    ClassBid,
	"ask":    ClassAsk,
	"spread": ClassSpread,
}

// ParseClass resolves a protocol alias ("bid", "ask", "spread") to a Class
func ParseClass(alias string) (Class, error) {
	class, ok := classAliases[alias]
	if !ok {
		return ClassNone, fmt.Errorf("unknown class alias %q", alias)
	}
	return class, nil
}

func (c Class) String() string {
	switch c {
	case ClassBid:
		return "bid"
	case ClassAsk:
		return "ask"
	case ClassSpread:
		return "spread"
	default:
		return "none"
	}
}

// Entry represents one price level of the book.
// Price is the identity of an entry and never changes once the entry is
// stored; only Size is reduced by consuming orders.
type Entry struct {
	Price int64
	Size  int64
	Class Class
}

// NewEntry creates a classified entry
func NewEntry(price, size int64, class Class) Entry {
	return Entry{Price: price, Size: size, Class: class}
}

// Sentinel returns the zero-size, unclassified entry reported for prices
// the book does not hold
func Sentinel(price int64) Entry {
	return Entry{Price: price}
}

// IsSentinel reports whether the entry carries no classification
func (e Entry) IsSentinel() bool {
	return e.Class == ClassNone
}

func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entry [price=%d, size=%d, class=%s]", e.Price, e.Size, e.Class)
	return b.String()
}

// MarshalZerologObject lets entries be attached to log events with Object()
func (e Entry) MarshalZerologObject(ev *zerolog.Event) {
	ev.Int64("price", e.Price).Int64("size", e.Size).Stringer("class", e.Class)
}
