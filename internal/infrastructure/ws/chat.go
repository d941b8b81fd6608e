package ws

import (
	"context"
	"fmt"
	"sync"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/logging"
	"github.com/nexgen/taskbuddy/internal/infrastructure/metrics"
)

const chatLimitMessage = "Chat limit reached for this room. Ask the room owner to clear the chat."

// roomSender is the fan-out surface the relays address rooms through.
type roomSender interface {
	ToRoom(roomID string, env *Envelope)
	ToChannel(channelID string, env *Envelope)
}

// ChatRelay is the durable message relay: it enforces the per-room history
// cap against the store, persists accepted messages, and fans the persisted
// copy out to the room.
type ChatRelay struct {
	store  domain.MessageRepository
	rooms  domain.RoomOwnerLookup
	sender roomSender
	logger logging.Logger

	// Per-room locks serialize the count-then-insert pair so concurrent
	// senders cannot both slip past the cap.
	locks sync.Map // map[string]*sync.Mutex
}

func NewChatRelay(store domain.MessageRepository, rooms domain.RoomOwnerLookup, sender roomSender, logger logging.Logger) *ChatRelay {
	return &ChatRelay{
		store:  store,
		rooms:  rooms,
		sender: sender,
		logger: logger,
	}
}

func (cr *ChatRelay) roomLock(roomID string) *sync.Mutex {
	lock, _ := cr.locks.LoadOrStore(roomID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Post runs the cap check, persists, and broadcasts. The capacity rejection
// goes to the originating channel only; persistence failures are logged and
// swallowed; the client infers failure from the missing broadcast.
func (cr *ChatRelay) Post(ctx context.Context, channelID, roomID string, candidate ChatCandidate) {
	if roomID == "" || candidate.SenderID == "" {
		return
	}

	msg, err := domain.NewChatMessage(roomID, candidate.SenderID, candidate.Sender, candidate.Text, candidate.Timestamp)
	if err != nil {
		cr.logger.Debug(logging.WebSocket, logging.Chat, "dropping invalid chat candidate", map[logging.ExtraKey]any{
			"roomId":       roomID,
			"channelId":    channelID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	lock := cr.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	count, err := cr.store.CountByRoom(ctx, roomID)
	if err != nil {
		cr.logger.Error(logging.WebSocket, logging.Chat, "chat count failed", map[logging.ExtraKey]any{
			"roomId":       roomID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	if count >= domain.ChatHistoryLimit {
		metrics.ChatCapRejections.Inc()
		cr.sender.ToChannel(channelID, NewChatError(chatLimitMessage))
		return
	}

	if err := cr.store.Insert(ctx, msg); err != nil {
		cr.logger.Error(logging.WebSocket, logging.Chat, "chat persist failed", map[logging.ExtraKey]any{
			"roomId":       roomID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	// Broadcast the store-confirmed copy, sender included, so every UI
	// renders the canonical message with its durable id.
	cr.sender.ToRoom(roomID, NewChatBroadcast(msg))
}

// History returns up to the cap's worth of messages, oldest first.
func (cr *ChatRelay) History(ctx context.Context, roomID string) ([]domain.ChatMessage, error) {
	return cr.store.GetByRoom(ctx, roomID, domain.ChatHistoryLimit)
}

// Clear deletes a room's history. Only the room owner may do it; there is no
// live broadcast; clients re-fetch on their next chat-panel open.
func (cr *ChatRelay) Clear(ctx context.Context, roomID, requesterID string) (int64, error) {
	room, err := cr.rooms.GetByID(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("failed to load room %s: %w", roomID, err)
	}

	if !room.IsOwner(requesterID) {
		return 0, domain.ErrNotRoomOwner
	}

	return cr.store.DeleteByRoom(ctx, roomID)
}
