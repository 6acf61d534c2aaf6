// Package protocol decodes order book text commands and executes them
// against a book.
//
// Grammar, one command per line, comma separated:
//
//	u,<price>,<size>,<bid|ask|spread>  set the level at price
//	q,best_bid                         print "<price>,<size>" of the best bid
//	q,best_ask                         print "<price>,<size>" of the best ask
//	q,size,<price>                     print the size at price
//	o,buy,<size>                       remove size shares out of asks, cheapest first
//	o,sell,<size>                      remove size shares out of bids, most expensive first
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SlavaShishkanu/Order-book-test-task/domain"
)

// ErrMalformedCommand matches every decoding failure
var ErrMalformedCommand = errors.New("malformed command")

const delimiter = ","

// Kind identifies a decoded command
type Kind int

const (
	KindUpdate Kind = iota
	KindBestBid
	KindBestAsk
	KindSize
	KindBuy
	KindSell
)

func (k Kind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindBestBid:
		return "best_bid"
	case KindBestAsk:
		return "best_ask"
	case KindSize:
		return "size"
	case KindBuy:
		return "buy"
	case KindSell:
		return "sell"
	default:
		return "unknown"
	}
}

// IsQuery reports whether the command produces an output line
func (k Kind) IsQuery() bool {
	return k == KindBestBid || k == KindBestAsk || k == KindSize
}

// IsOrder reports whether the command consumes liquidity
func (k Kind) IsOrder() bool {
	return k == KindBuy || k == KindSell
}

// Command is one decoded line. Only the fields relevant to Kind are set.
type Command struct {
	Kind Kind
	// Entry is the level to store for KindUpdate
	Entry domain.Entry
	// Price is the queried price for KindSize
	Price int64
	// Size is the demand for KindBuy and KindSell
	Size int64
}

// MalformedCommandError describes why a line could not be decoded
type MalformedCommandError struct {
	Text   string
	Reason string
	Err    error
}

func (e *MalformedCommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed command %q: %s: %v", e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed command %q: %s", e.Text, e.Reason)
}

func (e *MalformedCommandError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedCommand, e.Err}
	}
	return []error{ErrMalformedCommand}
}

// Parse decodes a single line. Surrounding whitespace is ignored.
func Parse(line string) (Command, error) {
	text := strings.TrimSpace(line)
	fields := strings.Split(text, delimiter)

	malformed := func(reason string, err error) (Command, error) {
		return Command{}, &MalformedCommandError{Text: text, Reason: reason, Err: err}
	}

	switch fields[0] {
	case "u":
		if len(fields) != 4 {
			return malformed("update expects price, size and class", nil)
		}
		price, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return malformed("bad price", err)
		}
		size, err := parseSize(fields[2])
		if err != nil {
			return malformed("bad size", err)
		}
		class, err := domain.ParseClass(fields[3])
		if err != nil {
			return malformed("bad class", err)
		}
		return Command{Kind: KindUpdate, Entry: domain.NewEntry(price, size, class)}, nil

	case "q":
		if len(fields) < 2 {
			return malformed("query expects a target", nil)
		}
		switch fields[1] {
		case "best_bid", "best_ask":
			if len(fields) != 2 {
				return malformed("best price query takes no arguments", nil)
			}
			if fields[1] == "best_bid" {
				return Command{Kind: KindBestBid}, nil
			}
			return Command{Kind: KindBestAsk}, nil
		case "size":
			if len(fields) != 3 {
				return malformed("size query expects a price", nil)
			}
			price, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return malformed("bad price", err)
			}
			return Command{Kind: KindSize, Price: price}, nil
		default:
			return malformed(fmt.Sprintf("unknown query %q", fields[1]), nil)
		}

	case "o":
		if len(fields) != 3 {
			return malformed("order expects a side and a size", nil)
		}
		var kind Kind
		switch fields[1] {
		case "buy":
			kind = KindBuy
		case "sell":
			kind = KindSell
		default:
			return malformed(fmt.Sprintf("unknown order side %q", fields[1]), nil)
		}
		size, err := parseSize(fields[2])
		if err != nil {
			return malformed("bad size", err)
		}
		return Command{Kind: kind, Size: size}, nil

	default:
		return malformed(fmt.Sprintf("unknown command %q", fields[0]), nil)
	}
}

func parseSize(field string) (int64, error) {
	size, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, fmt.Errorf("size %d is negative", size)
	}
	return size, nil
}
