package ws

// Inbound events, emitted by clients.
const (
	EventJoinRoom    = "joinRoom"
	EventTyping      = "typing"
	EventChatMessage = "chatMessage"
)

// Outbound events, emitted by the server.
const (
	EventPresenceUpdate = "presenceUpdate"
	EventChatError      = "chatError"

	EventTaskCreated = "taskCreated"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)
