package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexgen/taskbuddy/internal/infrastructure/validate"
)

const (
	joinCodeLength = 6

	joinCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	charsetLen = big.NewInt(int64(len(joinCodeChars)))

	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidJoinCode  = errors.New("invalid room code")
	ErrNotRoomOwner     = errors.New("only the room owner may do this")
	ErrMemberNotFound   = errors.New("member not found")
	ErrOwnerNotKickable = errors.New("the room owner cannot be kicked")
)

// Room is a shared class: an owner plus a joinable member set. Tasks and chat
// are scoped to a room, or to "personal" for tasks outside any room.
type Room struct {
	ID        string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Code      string    `bson:"code" json:"code"`
	OwnerID   string    `bson:"owner" json:"owner"`
	MemberIDs []string  `bson:"members" json:"members"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	GetByMember(ctx context.Context, userID string) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

// RoomOwnerLookup is the slice of RoomRepository the chat relay needs to gate
// history clearing on ownership.
type RoomOwnerLookup interface {
	GetByID(ctx context.Context, id string) (*Room, error)
}

func NewRoom(name, ownerID string) (*Room, error) {
	validateName := validate.Field("name", validate.Compose(
		validate.Required(),
		validate.MinLength(2),
		validate.MaxLength(64),
	))
	if err := validateName(name); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, ErrMemberNotFound
	}

	code, err := generateJoinCode()
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Code:      code,
		OwnerID:   ownerID,
		MemberIDs: []string{ownerID},
		CreatedAt: time.Now(),
	}, nil
}

func (r *Room) IsOwner(userID string) bool {
	return userID != "" && r.OwnerID == userID
}

func (r *Room) IsMember(userID string) bool {
	for _, id := range r.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember is idempotent: joining a room twice keeps a single entry.
func (r *Room) AddMember(userID string) {
	if userID == "" || r.IsMember(userID) {
		return
	}
	r.MemberIDs = append(r.MemberIDs, userID)
}

func (r *Room) RemoveMember(userID string) error {
	if userID == r.OwnerID {
		return ErrOwnerNotKickable
	}

	for i, id := range r.MemberIDs {
		if id == userID {
			r.MemberIDs = append(r.MemberIDs[:i], r.MemberIDs[i+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}

func generateJoinCode() (string, error) {
	var sb strings.Builder
	sb.Grow(joinCodeLength)

	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeChars[n.Int64()])
	}

	return sb.String(), nil
}
