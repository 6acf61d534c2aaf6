package orderbook

import (
	"errors"
	"fmt"

	"github.com/SlavaShishkanu/Order-book-test-task/domain"
)

var (
	// ErrNoBidsAvailable is returned when a sell order exceeds bid liquidity
	ErrNoBidsAvailable = errors.New("no more bids available")
	// ErrNoAsksAvailable is returned when a buy order exceeds ask liquidity
	ErrNoAsksAvailable = errors.New("no more asks available")
)

// InsufficientLiquidityError reports a consuming order that could not be
// filled completely. Levels consumed before the shortfall stay consumed.
type InsufficientLiquidityError struct {
	Side      domain.Side
	Requested int64
	Unfilled  int64
}

func (e *InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("cannot %s %d shares, %d left unfilled: %v",
		e.Side, e.Requested, e.Unfilled, e.Unwrap())
}

func (e *InsufficientLiquidityError) Unwrap() error {
	if e.Side == domain.SideBuy {
		return ErrNoAsksAvailable
	}
	return ErrNoBidsAvailable
}
