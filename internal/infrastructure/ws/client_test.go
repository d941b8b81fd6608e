package ws

import "testing"

func TestClientSendDropsWhenBufferFull(t *testing.T) {
	cl := NewClient(nil, "u1", "Alice")

	// No writer is draining, so the buffer eventually fills; send must
	// never block.
	for i := 0; i < cap(cl.Message)+10; i++ {
		cl.send(NewChatError("x"))
	}

	if got := len(cl.Message); got != cap(cl.Message) {
		t.Fatalf("expected a full buffer, got %d of %d", got, cap(cl.Message))
	}
}

func TestClientSendAfterCloseIsNoop(t *testing.T) {
	cl := NewClient(nil, "u1", "Alice")
	cl.Close()

	cl.send(NewChatError("x"))

	if got := len(cl.Message); got != 0 {
		t.Fatalf("closed client must not queue, got %d", got)
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	cl := NewClient(nil, "u1", "Alice")

	cl.Close()
	cl.Close()

	if !cl.IsClosed() {
		t.Fatal("client should report closed")
	}
}
