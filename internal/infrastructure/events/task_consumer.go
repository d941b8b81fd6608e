package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/rabbitmq/amqp091-go"
	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/contracts"
	"github.com/nexgen/taskbuddy/internal/infrastructure/messaging"
)

// taskConsumer drains the tasks queue and writes the audit trail.
type taskConsumer struct {
	rabbitmq *messaging.RabbitMQ
	audit    domain.TaskAuditRepository
}

func NewTaskConsumer(rabbitmq *messaging.RabbitMQ, audit domain.TaskAuditRepository) *taskConsumer {
	return &taskConsumer{
		rabbitmq: rabbitmq,
		audit:    audit,
	}
}

func (c *taskConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.TasksQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.TaskEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			log.Printf("Failed to unmarshal task event: %v", err)
			return err
		}

		entry := domain.NewTaskAuditLog(
			routingKeyToEventType(msg.RoutingKey),
			payload.Task.ID,
			payload.RoomID,
			message.ActorID,
			map[string]any{
				"title":  payload.Task.Title,
				"status": payload.Task.Status,
			},
		)

		return c.audit.Log(ctx, entry)
	})
}

func routingKeyToEventType(key string) domain.TaskEventType {
	switch key {
	case contracts.EventTaskCreated:
		return domain.EventTaskCreated
	case contracts.EventTaskUpdated:
		return domain.EventTaskUpdated
	case contracts.EventTaskDeleted:
		return domain.EventTaskDeleted
	}
	return domain.TaskEventType(key)
}
