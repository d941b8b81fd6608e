package rooms

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/json"
	"github.com/nexgen/taskbuddy/internal/infrastructure/security"
	"github.com/nexgen/taskbuddy/internal/presentation/utils"
)

type Handler struct {
	roomRepository    domain.RoomRepository
	messageRepository domain.MessageRepository
}

func NewHandler(
	roomRepository domain.RoomRepository,
	messageRepository domain.MessageRepository,
) *Handler {
	return &Handler{
		roomRepository:    roomRepository,
		messageRepository: messageRepository,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new room
// @Description  Creates a room owned by the current user and returns its join code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest true "Room creation parameters"
// @Success      201 {object} roomResponse "Room created successfully"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	newRoom, err := domain.NewRoom(req.Name, claims.Subject)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.roomRepository.Create(r.Context(), newRoom); err != nil {
		log.Printf("Repository error creating room %s: %v", newRoom.ID, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, mapRoom(newRoom))
}

// JoinRoomHandler godoc
// @Summary      Join a room by code
// @Description  Adds the current user to the room matching the join code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body joinRoomRequest true "Join code"
// @Success      200 {object} roomResponse "Joined the room"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication"
// @Failure      404 {object} map[string]interface{} "No room matches the code"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms/join [post]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		json.WriteValidationError(w, errors.New("room code is required"))
		return
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	room, err := h.roomRepository.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidJoinCode):
			json.WriteError(w, http.StatusNotFound, err, "No room matches that code")
		default:
			log.Printf("Repository error fetching room by code: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	// Joining twice is fine; membership is a set.
	if !room.IsMember(claims.Subject) {
		room.AddMember(claims.Subject)
		if err := h.roomRepository.Update(r.Context(), room); err != nil {
			log.Printf("Failed to persist room %s after join: %v", room.ID, err)
			json.WriteInternalError(w, err)
			return
		}
	}

	json.Write(w, http.StatusOK, mapRoom(room))
}

// ListRoomsHandler godoc
// @Summary      List rooms
// @Description  Returns all rooms the current user is a member of
// @Tags         rooms
// @Produce      json
// @Success      200 {array} roomResponse "Rooms"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms [get]
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	rooms, err := h.roomRepository.GetByMember(r.Context(), claims.Subject)
	if err != nil {
		log.Printf("Repository error listing rooms: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	resp := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, mapRoom(&rooms[i]))
	}

	json.Write(w, http.StatusOK, resp)
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Description  Returns a room the current user is a member of
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} roomResponse "Room details"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      401 {object} map[string]interface{} "Unauthorized - not a member"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	room, _, ok := h.loadRoomForMember(w, r)
	if !ok {
		return
	}

	json.Write(w, http.StatusOK, mapRoom(room))
}

// KickMemberHandler godoc
// @Summary      Kick a member
// @Description  Removes a member from the room (owner only); the owner cannot be kicked
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body kickMemberRequest true "Member to remove"
// @Success      204 "Member removed"
// @Failure      400 {object} map[string]interface{} "Bad request - owner cannot be kicked"
// @Failure      401 {object} map[string]interface{} "Unauthorized - not the owner"
// @Failure      404 {object} map[string]interface{} "Room or member not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms/{roomId}/kick [post]
func (h *Handler) KickMemberHandler(w http.ResponseWriter, r *http.Request) {
	room, claims, ok := h.loadRoomForMember(w, r)
	if !ok {
		return
	}

	var req kickMemberRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if !room.IsOwner(claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You aren't the owner")
		return
	}

	if err := room.RemoveMember(req.MemberID); err != nil {
		switch {
		case errors.Is(err, domain.ErrOwnerNotKickable):
			json.WriteError(w, http.StatusBadRequest, err, "The owner cannot be kicked")
		case errors.Is(err, domain.ErrMemberNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Member not found")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	if err := h.roomRepository.Update(r.Context(), room); err != nil {
		log.Printf("Failed to persist room %s after kick: %v", room.ID, err)
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteRoomHandler godoc
// @Summary      Delete a room
// @Description  Permanently deletes a room and its chat history (owner only)
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      204 "Room deleted successfully"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      401 {object} map[string]interface{} "Unauthorized - not the owner"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /rooms/{roomId} [delete]
func (h *Handler) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	room, claims, ok := h.loadRoomForMember(w, r)
	if !ok {
		return
	}

	if !room.IsOwner(claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You aren't the owner")
		return
	}

	if err := h.roomRepository.Delete(r.Context(), room.ID); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	if _, err := h.messageRepository.DeleteByRoom(r.Context(), room.ID); err != nil {
		log.Printf("Failed to delete chat history for room %s: %v", room.ID, err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadRoomForMember(w http.ResponseWriter, r *http.Request) (*domain.Room, *security.SessionClaims, bool) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return nil, nil, false
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return nil, nil, false
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
		return nil, nil, false
	}

	if !room.IsMember(claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You are not a member")
		return nil, nil, false
	}

	return room, claims, true
}
