package rooms

import (
	"time"

	"github.com/nexgen/taskbuddy/internal/domain"
)

// createRoomRequest represents the request to create a new room
type createRoomRequest struct {
	Name string `json:"name" example:"Period 3 Biology" minLength:"2"` // Display name of the room
}

// joinRoomRequest represents the request to join a room by code
type joinRoomRequest struct {
	Code string `json:"code" example:"X7K2PQ"` // Six character join code
}

// kickMemberRequest represents the request to remove a member from a room
type kickMemberRequest struct {
	MemberID string `json:"memberId" example:"550e8400-e29b-41d4-a716-446655440001"` // Member ID to remove
}

// roomResponse represents room details
type roomResponse struct {
	ID        string    `json:"_id" example:"550e8400-e29b-41d4-a716-446655440000"` // Unique room identifier
	Name      string    `json:"name" example:"Period 3 Biology"`                    // Display name of the room
	Code      string    `json:"code" example:"X7K2PQ"`                              // Join code
	OwnerID   string    `json:"owner"`                                              // Room owner's user id
	MemberIDs []string  `json:"members"`                                            // Member user ids
	CreatedAt time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`           // Room creation timestamp
}

func mapRoom(room *domain.Room) roomResponse {
	return roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Code:      room.Code,
		OwnerID:   room.OwnerID,
		MemberIDs: room.MemberIDs,
		CreatedAt: room.CreatedAt,
	}
}
