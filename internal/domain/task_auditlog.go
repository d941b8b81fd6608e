package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskEventType string

const (
	EventTaskCreated TaskEventType = "task_created"
	EventTaskUpdated TaskEventType = "task_updated"
	EventTaskDeleted TaskEventType = "task_deleted"
)

// TaskAuditLog is the durable trail of task mutations, written by the AMQP
// consumer rather than the REST handlers so the write stays off the hot path.
type TaskAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	TaskID    string         `bson:"task_id" json:"taskId"`
	RoomID    string         `bson:"room_id" json:"roomId"`
	ActorID   string         `bson:"actor_id" json:"actorId"`
	EventType TaskEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type TaskAuditRepository interface {
	Log(ctx context.Context, log *TaskAuditLog) error
	GetByRoomID(ctx context.Context, roomID string, limit int) ([]TaskAuditLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewTaskAuditLog(eventType TaskEventType, taskID, roomID, actorID string, metadata map[string]any) *TaskAuditLog {
	return &TaskAuditLog{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		RoomID:    roomID,
		ActorID:   actorID,
		EventType: eventType,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
