package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewChatMessage(t *testing.T) {
	msg, err := NewChatMessage("room-1", "u1", "Alice", "  hello  ", "10:42 AM")
	if err != nil {
		t.Fatalf("NewChatMessage failed: %v", err)
	}

	if msg.Text != "hello" {
		t.Fatalf("text should be trimmed, got %q", msg.Text)
	}
	if msg.Timestamp != "10:42 AM" {
		t.Fatalf("client timestamp must be kept verbatim, got %q", msg.Timestamp)
	}
	if msg.ID == "" {
		t.Fatal("message must get a durable id")
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("CreatedAt must be assigned")
	}
}

func TestNewChatMessageRejectsEmptyText(t *testing.T) {
	if _, err := NewChatMessage("room-1", "u1", "Alice", "   ", ""); !errors.Is(err, ErrEmptyChatText) {
		t.Fatalf("expected ErrEmptyChatText, got %v", err)
	}
}

func TestNewChatMessageRejectsOversizedText(t *testing.T) {
	text := strings.Repeat("a", maxChatTextLength+1)
	if _, err := NewChatMessage("room-1", "u1", "Alice", text, ""); !errors.Is(err, ErrChatTextTooLong) {
		t.Fatalf("expected ErrChatTextTooLong, got %v", err)
	}
}
