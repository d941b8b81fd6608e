package tasks

import (
	"time"

	"github.com/nexgen/taskbuddy/internal/domain"
)

// taskRequest carries the writable task fields for create and update
type taskRequest struct {
	Title       string     `json:"title" example:"Read chapter 4" minLength:"1"` // Task title
	Description string     `json:"description,omitempty" example:"Pages 80-110"` // Optional details
	Priority    string     `json:"priority,omitempty" example:"Medium" enum:"Low,Medium,High"`
	Status      string     `json:"status,omitempty" example:"Todo" enum:"Todo,In Progress,Done"`
	Tags        []string   `json:"tags,omitempty"`                    // Free-form labels
	DueDate     *time.Time `json:"dueDate,omitempty"`                 // Optional due date
	Order       int        `json:"order" example:"0"`                 // Position within the board column
	RoomID      string     `json:"roomId,omitempty" example:"personal"` // Room id, or "personal" for the private board
}

// taskResponse represents a task
type taskResponse struct {
	ID          string     `json:"_id" example:"550e8400-e29b-41d4-a716-446655440000"` // Unique task identifier
	Title       string     `json:"title" example:"Read chapter 4"`                     // Task title
	Description string     `json:"description,omitempty"`                              // Optional details
	Priority    string     `json:"priority" example:"Medium"`                          // Low, Medium or High
	Status      string     `json:"status" example:"Todo"`                              // Todo, In Progress or Done
	Tags        []string   `json:"tags"`                                               // Free-form labels
	DueDate     *time.Time `json:"dueDate,omitempty"`                                  // Optional due date
	Order       int        `json:"order"`                                              // Position within the board column
	RoomID      string     `json:"roomId"`                                             // Room id, or "personal"
	OwnerID     string     `json:"owner"`                                              // Creating user's id
	CreatedAt   time.Time  `json:"createdAt"`                                          // Creation timestamp
	UpdatedAt   time.Time  `json:"updatedAt"`                                          // Last modification timestamp
}

func mapTask(task *domain.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		Tags:        task.Tags,
		DueDate:     task.DueDate,
		Order:       task.Order,
		RoomID:      task.BroadcastRoomID(),
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
