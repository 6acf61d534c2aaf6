package domain

import "github.com/rs/zerolog"

// Side represents the direction of a consuming order
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Fill records the size a consuming order removed from one price level
type Fill struct {
	Side  Side
	Price int64
	Size  int64
	// Class is the classification of the level that was hit
	Class Class
}

// TotalSize sums the size of all fills
func TotalSize(fills []Fill) int64 {
	var total int64
	for _, f := range fills {
		total += f.Size
	}
	return total
}

// MarshalZerologObject lets fills be attached to log events with Object()
func (f Fill) MarshalZerologObject(ev *zerolog.Event) {
	ev.Stringer("side", f.Side).
		Int64("price", f.Price).
		Int64("size", f.Size).
		Stringer("class", f.Class)
}
