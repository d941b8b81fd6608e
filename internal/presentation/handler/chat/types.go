package chat

import (
	"time"

	"github.com/nexgen/taskbuddy/internal/domain"
)

// messageResponse represents one chat message
type messageResponse struct {
	ID        string    `json:"_id" example:"550e8400-e29b-41d4-a716-446655440000"` // Unique message identifier
	RoomID    string    `json:"roomId"`                                             // Room the message belongs to
	SenderID  string    `json:"senderId"`                                           // Sending user's id
	Sender    string    `json:"sender" example:"Jane Doe"`                          // Sending user's display name
	Text      string    `json:"text" example:"Did everyone finish the lab?"`        // Message body
	Timestamp string    `json:"timestamp" example:"10:42 AM"`                       // Client's local send time, verbatim
	CreatedAt time.Time `json:"createdAt"`                                          // Server persistence timestamp
}

// historyResponse wraps a room's message history
type historyResponse struct {
	Messages []messageResponse `json:"messages"` // Oldest first
	Limit    int               `json:"limit"`    // Per-room retention cap
}

// clearResponse reports how many messages a clear removed
type clearResponse struct {
	Deleted int64 `json:"deleted" example:"42"` // Number of messages deleted
}

func mapMessage(msg *domain.ChatMessage) messageResponse {
	return messageResponse{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Sender:    msg.SenderName,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}
