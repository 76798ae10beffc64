package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func testClient(h *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{
		hub:    h,
		userID: userID,
		send:   make(chan []byte, buffer),
	}
}

func TestHub_PushReachesAllUserConnections(t *testing.T) {
	h := NewHub()
	userID := uuid.New()

	// Same user on two devices.
	a := testClient(h, userID, sendBuffer)
	b := testClient(h, userID, sendBuffer)
	h.join(a)
	h.join(b)

	h.Push(userID, "notification", map[string]string{"message": "hi"})

	for _, c := range []*Client{a, b} {
		select {
		case payload := <-c.send:
			var msg Message
			if err := json.Unmarshal(payload, &msg); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if msg.Type != "notification" {
				t.Errorf("type = %q, want notification", msg.Type)
			}
		default:
			t.Fatal("connection did not receive the push")
		}
	}
}

func TestHub_PushToAbsentUserIsNoop(t *testing.T) {
	h := NewHub()
	// Must not panic or block.
	h.Push(uuid.New(), "notification", "data")
}

func TestHub_PushDoesNotCrossRooms(t *testing.T) {
	h := NewHub()
	alice := testClient(h, uuid.New(), sendBuffer)
	bob := testClient(h, uuid.New(), sendBuffer)
	h.join(alice)
	h.join(bob)

	h.Push(alice.userID, "notification", "for alice")

	if len(alice.send) != 1 {
		t.Error("alice should receive the push")
	}
	if len(bob.send) != 0 {
		t.Error("bob must not receive alice's push")
	}
}

func TestHub_SlowConsumerDropped(t *testing.T) {
	h := NewHub()
	userID := uuid.New()

	// Buffer of one: the second push overflows.
	c := testClient(h, userID, 1)
	h.join(c)

	h.Push(userID, "notification", "first")
	h.Push(userID, "notification", "second")

	if h.ClientCount() != 0 {
		t.Fatal("slow consumer should have been dropped")
	}

	// Its channel is closed after the buffered message.
	<-c.send
	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed")
	}
}

func TestHub_LeaveCleansUpRoom(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	c := testClient(h, userID, sendBuffer)

	h.join(c)
	if h.ClientCount() != 1 {
		t.Fatalf("count = %d, want 1", h.ClientCount())
	}

	h.leave(c)
	if h.ClientCount() != 0 {
		t.Fatalf("count = %d, want 0", h.ClientCount())
	}

	// Leaving twice is harmless.
	h.leave(c)
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	a := testClient(h, uuid.New(), sendBuffer)
	b := testClient(h, uuid.New(), sendBuffer)
	h.join(a)
	h.join(b)

	h.Close()

	if h.ClientCount() != 0 {
		t.Fatal("close should drop every connection")
	}
	if _, ok := <-a.send; ok {
		t.Error("send channel should be closed on shutdown")
	}
}
