package protocol

import (
	"fmt"

	"github.com/SlavaShishkanu/Order-book-test-task/domain"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
)

// Result is what executing one command produced
type Result struct {
	// Command is the decoded line, zero when decoding failed
	Command Command
	// Output is the line handed to the writer, empty for updates and orders
	Output string
	// Fills are the levels hit by an order, including those hit before a
	// liquidity error
	Fills []domain.Fill
}

// Handler executes commands against one book and writes query results.
// It keeps no state of its own besides the book and writer references.
type Handler struct {
	book   orderbook.IOrderBook
	writer Writer
}

// NewHandler binds a handler to a book and an output writer
func NewHandler(book orderbook.IOrderBook, writer Writer) *Handler {
	return &Handler{book: book, writer: writer}
}

// Handle decodes and executes a single line. Decoding failures match
// ErrMalformedCommand and leave the book untouched.
func (h *Handler) Handle(line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	res, err := h.Execute(cmd)
	res.Command = cmd
	return res, err
}

// Execute runs a decoded command
func (h *Handler) Execute(cmd Command) (Result, error) {
	switch cmd.Kind {
	case KindUpdate:
		h.book.Update(cmd.Entry)
		return Result{}, nil
	case KindBestBid:
		return h.write(formatLevel(h.book.BestBid()))
	case KindBestAsk:
		return h.write(formatLevel(h.book.BestAsk()))
	case KindSize:
		return h.write(formatSize(h.book.EntryAtPrice(cmd.Price)))
	case KindBuy:
		fills, err := h.book.OrderBuy(cmd.Size)
		return Result{Fills: fills}, err
	case KindSell:
		fills, err := h.book.OrderSell(cmd.Size)
		return Result{Fills: fills}, err
	default:
		return Result{}, fmt.Errorf("%w: unsupported kind %v", ErrMalformedCommand, cmd.Kind)
	}
}

func (h *Handler) write(output string) (Result, error) {
	if err := h.writer.Write(output); err != nil {
		return Result{}, err
	}
	return Result{Output: output}, nil
}

func formatLevel(e domain.Entry) string {
	return fmt.Sprintf("%d,%d\n", e.Price, e.Size)
}

func formatSize(e domain.Entry) string {
	return fmt.Sprintf("%d\n", e.Size)
}
