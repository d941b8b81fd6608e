package domain

import (
	"errors"
	"testing"
)

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask("Read chapter 4", "", "", "", "", "u1", nil, nil, 0)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}

	if task.Priority != PriorityMedium {
		t.Fatalf("expected default priority %q, got %q", PriorityMedium, task.Priority)
	}
	if task.Status != StatusTodo {
		t.Fatalf("expected default status %q, got %q", StatusTodo, task.Status)
	}
	if task.Tags == nil {
		t.Fatal("tags must marshal as an empty array, not null")
	}
	if !task.IsPersonal() {
		t.Fatal("task without a room is personal")
	}
}

func TestNewTaskPersonalMarker(t *testing.T) {
	task, err := NewTask("Read chapter 4", "", "", "", PersonalRoomID, "u1", nil, nil, 0)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}

	if task.RoomID != "" {
		t.Fatalf("personal marker must be stored as empty room, got %q", task.RoomID)
	}
	if task.BroadcastRoomID() != PersonalRoomID {
		t.Fatalf("broadcast room must carry the personal marker, got %q", task.BroadcastRoomID())
	}
}

func TestNewTaskSharedRoom(t *testing.T) {
	task, err := NewTask("Lab writeup", "", PriorityHigh, StatusInProgress, "room-1", "u1", []string{"lab"}, nil, 3)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}

	if task.IsPersonal() {
		t.Fatal("task with a room is not personal")
	}
	if task.BroadcastRoomID() != "room-1" {
		t.Fatalf("expected room-1, got %q", task.BroadcastRoomID())
	}
}

func TestNewTaskValidation(t *testing.T) {
	if _, err := NewTask("   ", "", "", "", "", "u1", nil, nil, 0); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := NewTask("x", "", "Urgent", "", "", "u1", nil, nil, 0); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if _, err := NewTask("x", "", "", "Archived", "", "u1", nil, nil, 0); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTouchBumpsUpdatedAt(t *testing.T) {
	task, _ := NewTask("x", "", "", "", "", "u1", nil, nil, 0)
	before := task.UpdatedAt

	task.Touch()
	if task.UpdatedAt.Before(before) {
		t.Fatal("Touch must not move UpdatedAt backwards")
	}
}
