package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrWrite matches every failure of the output sink
var ErrWrite = errors.New("write output")

// Writer accepts formatted output lines
type Writer interface {
	Write(output string) error
}

// Sink buffers output lines in front of an io.Writer.
// Nothing reaches the underlying writer until Flush is called or the
// buffer fills up.
type Sink struct {
	w *bufio.Writer
}

// Ensure Sink implements Writer
var _ Writer = (*Sink)(nil)

// NewSink wraps w
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

func (s *Sink) Write(output string) error {
	if _, err := s.w.WriteString(output); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Flush pushes buffered output to the underlying writer
func (s *Sink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
