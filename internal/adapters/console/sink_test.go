package console_test

import (
	"bytes"
	"errors"
	"testing"

	"monopoly_report/internal/adapters/console"
)

func TestSink_EmitAppendsLineBreak(t *testing.T) {
	var buf bytes.Buffer
	s := console.NewSink(&buf)
	if err := s.Emit("a\nb\n"); err != nil {
		t.Fatal(err)
	}
	if err := s.Emit("c\n"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\n\nc\n\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestSink_PropagatesWriteError(t *testing.T) {
	if err := console.NewSink(failWriter{}).Emit("x"); err == nil {
		t.Fatalf("expected write error")
	}
}
