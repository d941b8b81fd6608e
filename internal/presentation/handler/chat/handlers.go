package chat

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/json"
	"github.com/nexgen/taskbuddy/internal/infrastructure/ws"
	"github.com/nexgen/taskbuddy/internal/presentation/utils"
)

type Handler struct {
	chatRelay      *ws.ChatRelay
	roomRepository domain.RoomRepository
}

func NewHandler(chatRelay *ws.ChatRelay, roomRepository domain.RoomRepository) *Handler {
	return &Handler{
		chatRelay:      chatRelay,
		roomRepository: roomRepository,
	}
}

// GetHistoryHandler godoc
// @Summary      Get chat history
// @Description  Returns a room's chat messages, oldest first, capped at the retention limit
// @Tags         chat
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} historyResponse "Chat history"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      401 {object} map[string]interface{} "Unauthorized - not a member"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /chat/{roomId} [get]
func (h *Handler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found")
		default:
			log.Printf("Repository error fetching room: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	if !room.IsMember(claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You are not a member")
		return
	}

	messages, err := h.chatRelay.History(r.Context(), roomID)
	if err != nil {
		log.Printf("Failed to load chat history for room %s: %v", roomID, err)
		json.WriteInternalError(w, err)
		return
	}

	resp := historyResponse{
		Messages: make([]messageResponse, 0, len(messages)),
		Limit:    domain.ChatHistoryLimit,
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, mapMessage(&messages[i]))
	}

	json.Write(w, http.StatusOK, resp)
}

// ClearChatHandler godoc
// @Summary      Clear chat history
// @Description  Deletes every chat message in a room (owner only), freeing the room's message budget
// @Tags         chat
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} clearResponse "Messages deleted"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      401 {object} map[string]interface{} "Unauthorized - not the owner"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /chat/{roomId} [delete]
func (h *Handler) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	deleted, err := h.chatRelay.Clear(r.Context(), roomID, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found")
		case errors.Is(err, domain.ErrNotRoomOwner):
			json.WriteError(w, http.StatusUnauthorized, err, "Only the room owner can clear the chat")
		default:
			log.Printf("Failed to clear chat for room %s: %v", roomID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, clearResponse{Deleted: deleted})
}
