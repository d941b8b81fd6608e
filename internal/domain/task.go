package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PersonalRoomID marks tasks outside any shared room; clients send it in
// place of a real room id and the task is stored without one.
const PersonalRoomID = "personal"

const (
	StatusTodo       = "Todo"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type Task struct {
	ID          string     `bson:"_id" json:"_id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Priority    string     `bson:"priority" json:"priority"`
	Tags        []string   `bson:"tags" json:"tags"`
	DueDate     *time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Status      string     `bson:"status" json:"status"`
	Order       int        `bson:"order" json:"order"`
	RoomID      string     `bson:"room,omitempty" json:"roomId,omitempty"`
	OwnerID     string     `bson:"owner" json:"owner"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	GetByRoom(ctx context.Context, roomID string) ([]Task, error)
	GetPersonal(ctx context.Context, ownerID string) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

func NewTask(title, description, priority, status, roomID, ownerID string, tags []string, dueDate *time.Time, order int) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if status == "" {
		status = StatusTodo
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	if roomID == PersonalRoomID {
		roomID = ""
	}

	now := time.Now()

	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Tags:        tags,
		DueDate:     dueDate,
		Status:      status,
		Order:       order,
		RoomID:      roomID,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Touch bumps the modification timestamp; call it before persisting an edit.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now()
}

// IsPersonal reports whether the task lives outside any shared room.
func (t *Task) IsPersonal() bool {
	return t.RoomID == ""
}

// BroadcastRoomID is the room id carried on task events; personal tasks are
// tagged with the personal marker so clients can filter.
func (t *Task) BroadcastRoomID() string {
	if t.IsPersonal() {
		return PersonalRoomID
	}
	return t.RoomID
}

func ValidateStatus(status string) error {
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return nil
	}
	return ErrInvalidStatus
}

func ValidatePriority(priority string) error {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return ErrInvalidPriority
}
