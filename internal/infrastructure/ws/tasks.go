package ws

import (
	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/metrics"
)

// TaskRelay fans task mutations out to every connected channel, not just the
// task's room; clients filter by comparing the event's roomId against their
// own context. The REST task API calls it right after each mutation persists,
// so events arrive in persistence-completion order.
type TaskRelay struct {
	registry *Registry
}

func NewTaskRelay(registry *Registry) *TaskRelay {
	return &TaskRelay{registry: registry}
}

func (tr *TaskRelay) TaskCreated(task *domain.Task) {
	tr.broadcast(NewTaskCreated(task))
}

func (tr *TaskRelay) TaskUpdated(task *domain.Task) {
	tr.broadcast(NewTaskUpdated(task))
}

func (tr *TaskRelay) TaskDeleted(taskID, roomID string) {
	tr.broadcast(NewTaskDeleted(taskID, roomID))
}

func (tr *TaskRelay) broadcast(env *Envelope) {
	for _, cl := range tr.registry.Snapshot() {
		cl.send(env)
	}
	metrics.EventsOut.WithLabelValues(env.Event).Inc()
}
