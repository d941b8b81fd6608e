package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatHistoryLimit caps the number of durable chat messages retained per
// room. postMessage rejects once a room reaches it; fetches never return more.
const ChatHistoryLimit = 100

const maxChatTextLength = 2000

var (
	ErrChatLimitReached = errors.New("chat limit reached for this room")
	ErrEmptyChatText    = errors.New("message text is required")
	ErrChatTextTooLong  = errors.New("message text is too long")
)

// ChatMessage is the durable chat record. Timestamp is the client's local
// send time carried verbatim; CreatedAt is assigned at persistence.
type ChatMessage struct {
	ID         string    `bson:"_id" json:"_id"`
	RoomID     string    `bson:"room_id" json:"roomId"`
	SenderID   string    `bson:"sender" json:"senderId"`
	SenderName string    `bson:"sender_name" json:"sender"`
	Text       string    `bson:"text" json:"text"`
	Timestamp  string    `bson:"timestamp" json:"timestamp"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

type MessageRepository interface {
	Insert(ctx context.Context, msg *ChatMessage) error
	CountByRoom(ctx context.Context, roomID string) (int64, error)
	GetByRoom(ctx context.Context, roomID string, limit int64) ([]ChatMessage, error)
	DeleteByRoom(ctx context.Context, roomID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

func NewChatMessage(roomID, senderID, senderName, text, clientTimestamp string) (*ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyChatText
	}
	if len(text) > maxChatTextLength {
		return nil, ErrChatTextTooLong
	}

	return &ChatMessage{
		ID:         uuid.NewString(),
		RoomID:     roomID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Timestamp:  clientTimestamp,
		CreatedAt:  time.Now(),
	}, nil
}
