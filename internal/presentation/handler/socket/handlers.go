package socket

import (
	"errors"
	"log"
	"net/http"

	"github.com/nexgen/taskbuddy/internal/infrastructure/json"
	"github.com/nexgen/taskbuddy/internal/infrastructure/ws"
	"github.com/nexgen/taskbuddy/internal/presentation/utils"
)

type Handler struct {
	core *ws.Core
}

func NewHandler(core *ws.Core) *Handler {
	return &Handler{core: core}
}

// ConnectHandler godoc
// @Summary      Open a realtime channel
// @Description  Upgrades the request to a WebSocket channel bound to the session's identity. The channel joins a room with a joinRoom event and then carries presence, typing and chat traffic.
// @Tags         socket
// @Success      101 {object} map[string]interface{} "Switching Protocols - channel established"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication"
// @Security     SessionAuth
// @Router       /ws [get]
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(conn, claims.Subject, claims.Fullname)
	h.core.Register() <- client

	go client.WriteMessages()
	go client.ReadMessages(h.core)
}
