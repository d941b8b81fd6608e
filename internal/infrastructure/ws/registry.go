package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nexgen/taskbuddy/internal/infrastructure/logging"
	"github.com/nexgen/taskbuddy/internal/infrastructure/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Registry is the connection registry: every live channel gets a stable
// handle here between connect and disconnect. It knows nothing about rooms.
type Registry struct {
	clients map[string]*Client
	mu      sync.RWMutex

	logger logging.Logger
}

func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

func (reg *Registry) Add(cl *Client) {
	reg.mu.Lock()
	reg.clients[cl.ID] = cl
	reg.mu.Unlock()

	metrics.ConnectedChannels.Inc()

	reg.logger.Info(logging.WebSocket, logging.Connect, "channel connected", map[logging.ExtraKey]any{
		"channelId": cl.ID,
		"userId":    cl.UserID,
	})
}

// Remove drops the channel's handle and returns it, or nil if it was never
// registered (or already removed).
func (reg *Registry) Remove(channelID string) *Client {
	reg.mu.Lock()
	cl, ok := reg.clients[channelID]
	if ok {
		delete(reg.clients, channelID)
	}
	reg.mu.Unlock()

	if !ok {
		return nil
	}

	metrics.ConnectedChannels.Dec()

	reg.logger.Info(logging.WebSocket, logging.Disconnect, "channel disconnected", map[logging.ExtraKey]any{
		"channelId": channelID,
		"userId":    cl.UserID,
	})

	return cl
}

func (reg *Registry) Get(channelID string) (*Client, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	cl, ok := reg.clients[channelID]
	return cl, ok
}

// Snapshot copies the live client set so callers can fan out without
// holding the lock.
func (reg *Registry) Snapshot() []*Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	clients := make([]*Client, 0, len(reg.clients))
	for _, cl := range reg.clients {
		clients = append(clients, cl)
	}
	return clients
}

func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.clients)
}

func (reg *Registry) DisconnectAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, cl := range reg.clients {
		cl.Close()
	}

	metrics.ConnectedChannels.Sub(float64(len(reg.clients)))
	reg.clients = make(map[string]*Client)
}
