package ws

import (
	"encoding/json"

	"github.com/nexgen/taskbuddy/internal/domain"
)

// Envelope is the wire frame for every event in both directions.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// inboundEnvelope defers payload decoding until the event is dispatched.
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Identity mirrors the authenticated session established over HTTP; the core
// uses it only as a key and a label.
type Identity struct {
	UserID   string `json:"_id"`
	Fullname string `json:"fullname"`
}

// PresenceEntry is one live participant in a room's roster.
type PresenceEntry struct {
	UserID   string `json:"userId"`
	Fullname string `json:"fullname"`
	SocketID string `json:"socketId"`
}

// Payload structs
type JoinRoomPayload struct {
	RoomID string   `json:"roomId"`
	User   Identity `json:"user"`
}

type TypingPayload struct {
	RoomID   string   `json:"roomId"`
	User     Identity `json:"user"`
	IsTyping bool     `json:"isTyping"`
}

// ChatCandidate is the client's draft of a chat message; the persisted copy
// is what gets broadcast back.
type ChatCandidate struct {
	SenderID  string `json:"senderId"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type ChatMessagePayload struct {
	RoomID  string        `json:"roomId"`
	Message ChatCandidate `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type TaskDeletedPayload struct {
	ID     string `json:"id"`
	RoomID string `json:"roomId"`
}

func NewPresenceUpdate(roster []PresenceEntry) *Envelope {
	return &Envelope{
		Event: EventPresenceUpdate,
		Data:  roster,
	}
}

func NewTypingNotice(user Identity, isTyping bool) *Envelope {
	return &Envelope{
		Event: EventTyping,
		Data: struct {
			User     Identity `json:"user"`
			IsTyping bool     `json:"isTyping"`
		}{User: user, IsTyping: isTyping},
	}
}

func NewChatBroadcast(msg *domain.ChatMessage) *Envelope {
	return &Envelope{
		Event: EventChatMessage,
		Data:  msg,
	}
}

func NewChatError(message string) *Envelope {
	return &Envelope{
		Event: EventChatError,
		Data:  ErrorPayload{Message: message},
	}
}

func NewTaskCreated(task *domain.Task) *Envelope {
	return &Envelope{
		Event: EventTaskCreated,
		Data:  task,
	}
}

func NewTaskUpdated(task *domain.Task) *Envelope {
	return &Envelope{
		Event: EventTaskUpdated,
		Data:  task,
	}
}

func NewTaskDeleted(taskID, roomID string) *Envelope {
	return &Envelope{
		Event: EventTaskDeleted,
		Data:  TaskDeletedPayload{ID: taskID, RoomID: roomID},
	}
}
