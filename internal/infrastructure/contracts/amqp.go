package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	ActorID string `json:"actorId"`
	Data    []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)
