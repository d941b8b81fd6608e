package messaging

import "github.com/nexgen/taskbuddy/internal/domain"

const (
	TasksQueue      = "tasks"
	DeadLetterQueue = "dead_letter_queue"
)

type TaskEventData struct {
	Task   domain.Task `json:"task"`
	RoomID string      `json:"roomId"`
}
