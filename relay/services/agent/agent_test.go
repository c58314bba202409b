package agent

import (
	"context"
	"errors"
	"testing"
)

type fakeStream struct {
	ch  chan []byte
	err error
}

func newFakeStream(chunks [][]byte, err error) *fakeStream {
	s := &fakeStream{ch: make(chan []byte, len(chunks)), err: err}
	for _, c := range chunks {
		s.ch <- c
	}
	close(s.ch)
	return s
}

func (s *fakeStream) Chunks() <-chan []byte { return s.ch }

func (s *fakeStream) Err() error { return s.err }

func (s *fakeStream) Close() error { return nil }

type fakeInvoker struct {
	chunks    [][]byte
	streamErr error
	err       error
	calls     int
}

func (f *fakeInvoker) InvokeAgent(ctx context.Context, sessionID, inputText string) (Stream, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return newFakeStream(f.chunks, f.streamErr), nil
}

func TestSendConcatenatesChunksInOrder(t *testing.T) {
	inv := &fakeInvoker{chunks: [][]byte{[]byte("Hel"), []byte("lo, "), []byte("world")}}
	g := NewGateway(inv)

	got, err := g.Send(context.Background(), "s-1", "hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("reply = %q, want %q", got, "Hello, world")
	}
}

func TestSendEmptyStreamFallback(t *testing.T) {
	g := NewGateway(&fakeInvoker{})

	got, err := g.Send(context.Background(), "s-1", "hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != NoResponseFallback {
		t.Errorf("reply = %q, want %q", got, NoResponseFallback)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	inv := &fakeInvoker{chunks: [][]byte{[]byte("unused")}}
	g := NewGateway(inv)

	for _, msg := range []string{"", "   ", "\t\n"} {
		if _, err := g.Send(context.Background(), "s-1", msg); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("message %q: err = %v, want ErrEmptyMessage", msg, err)
		}
	}
	if inv.calls != 0 {
		t.Errorf("invoker called %d times for empty messages", inv.calls)
	}
}

func TestSendNilInvoker(t *testing.T) {
	g := NewGateway(nil)
	if _, err := g.Send(context.Background(), "s-1", "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSendInvokeFailure(t *testing.T) {
	g := NewGateway(&fakeInvoker{err: errors.New("connection refused")})
	if _, err := g.Send(context.Background(), "s-1", "hi"); err == nil {
		t.Error("want error for invoke failure")
	}
}

func TestSendStreamFailure(t *testing.T) {
	inv := &fakeInvoker{chunks: [][]byte{[]byte("partial")}, streamErr: errors.New("stream reset")}
	g := NewGateway(inv)
	if _, err := g.Send(context.Background(), "s-1", "hi"); err == nil {
		t.Error("want error for stream failure")
	}
}

func TestDefaultSessionID(t *testing.T) {
	if got := DefaultSessionID("abc123"); got != "session-abc123" {
		t.Errorf("DefaultSessionID = %q", got)
	}
}
