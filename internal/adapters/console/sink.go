package console

import (
	"io"
	"sync"
)

// Sink prints each narrative block followed by a line break, the way a
// browser console prints a logged string.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewSink(w io.Writer) *Sink { return &Sink{w: w} }

func (s *Sink) Emit(block string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, block); err != nil {
		return err
	}
	_, err := io.WriteString(s.w, "\n")
	return err
}
