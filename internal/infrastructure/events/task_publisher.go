package events

import (
	"context"
	"encoding/json"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/contracts"
	"github.com/nexgen/taskbuddy/internal/infrastructure/messaging"
)

// TaskPublisher mirrors task mutations onto the AMQP exchange so other
// services (and the audit consumer) see them. A nil publisher is valid and
// publishes nothing, which keeps the broker optional in development.
type TaskPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewTaskPublisher(rabbitmq *messaging.RabbitMQ) *TaskPublisher {
	return &TaskPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *TaskPublisher) PublishTaskCreated(ctx context.Context, task domain.Task) error {
	return p.publish(ctx, contracts.EventTaskCreated, task)
}

func (p *TaskPublisher) PublishTaskUpdated(ctx context.Context, task domain.Task) error {
	return p.publish(ctx, contracts.EventTaskUpdated, task)
}

func (p *TaskPublisher) PublishTaskDeleted(ctx context.Context, task domain.Task) error {
	return p.publish(ctx, contracts.EventTaskDeleted, task)
}

func (p *TaskPublisher) publish(ctx context.Context, routingKey string, task domain.Task) error {
	if p == nil || p.rabbitmq == nil {
		return nil
	}

	payload := messaging.TaskEventData{
		Task:   task,
		RoomID: task.BroadcastRoomID(),
	}

	taskEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		ActorID: task.OwnerID,
		Data:    taskEventJSON,
	})
}
