package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/logging"
	"github.com/nexgen/taskbuddy/internal/infrastructure/metrics"
)

const chatPostTimeout = 5 * time.Second

type inboundEvent struct {
	client *Client
	event  string
	data   json.RawMessage
}

// Core is the room coordination core. It owns the connection registry and the
// presence roster, wires inbound client events to the relays, and is the sole
// mutator of in-memory room state: every roster mutation happens on the Run
// goroutine, so a join's mutate-then-broadcast pair can never interleave with
// another join or leave on the same room.
type Core struct {
	registry *Registry
	roster   *Roster
	chat     *ChatRelay
	tasks    *TaskRelay

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent

	logger logging.Logger

	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewCore(messages domain.MessageRepository, rooms domain.RoomOwnerLookup, logger logging.Logger) *Core {
	c := &Core{
		registry:   NewRegistry(logger),
		roster:     NewRoster(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent, 256),
		logger:     logger,
		shutdown:   make(chan struct{}),
	}

	c.chat = NewChatRelay(messages, rooms, c, logger)
	c.tasks = NewTaskRelay(c.registry)

	return c
}

func (c *Core) Run(ctx context.Context) {
	defer c.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			c.Shutdown()
			return

		case <-c.shutdown:
			return

		case cl := <-c.register:
			c.registry.Add(cl)

		case cl := <-c.unregister:
			c.handleDisconnect(cl)

		case ev := <-c.inbound:
			c.handleInbound(ev)
		}
	}
}

// Dispatch hands an inbound client frame to the reactor.
func (c *Core) Dispatch(cl *Client, event string, data json.RawMessage) {
	metrics.EventsIn.WithLabelValues(event).Inc()

	select {
	case c.inbound <- inboundEvent{client: cl, event: event, data: data}:
	case <-c.shutdown:
	case <-cl.closed:
	}
}

func (c *Core) handleInbound(ev inboundEvent) {
	switch ev.event {
	case EventJoinRoom:
		c.handleJoin(ev.client, ev.data)

	case EventTyping:
		c.handleTyping(ev.client, ev.data)

	case EventChatMessage:
		c.handleChat(ev.client, ev.data)

	default:
		// Unknown events are dropped, same as malformed ones.
		c.logger.Debug(logging.WebSocket, logging.Dispatch, "unknown event", map[logging.ExtraKey]any{
			"event":     ev.event,
			"channelId": ev.client.ID,
		})
	}
}

// handleJoin binds the channel to a room, updates the roster, and broadcasts
// the full post-join roster to the room, joiner included. Malformed payloads
// are a silent no-op.
func (c *Core) handleJoin(cl *Client, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.RoomID == "" || payload.User.UserID == "" {
		return
	}

	// A channel joins one room for its lifetime.
	if cl.RoomID != "" && cl.RoomID != payload.RoomID {
		return
	}
	cl.RoomID = payload.RoomID
	cl.UserID = payload.User.UserID
	cl.Fullname = payload.User.Fullname

	roster := c.roster.Join(cl.ID, payload.RoomID, payload.User)
	if roster == nil {
		return
	}

	c.logger.Info(logging.WebSocket, logging.Presence, "channel joined room", map[logging.ExtraKey]any{
		"channelId": cl.ID,
		"roomId":    payload.RoomID,
		"userId":    payload.User.UserID,
	})

	c.ToRoom(payload.RoomID, NewPresenceUpdate(roster))
}

// handleTyping fans the indicator out to everyone else in the room; nothing
// is stored and the sender never hears its own signal back.
func (c *Core) handleTyping(cl *Client, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.RoomID == "" || payload.User.UserID == "" {
		return
	}

	env := NewTypingNotice(payload.User, payload.IsTyping)
	for _, entry := range c.roster.Snapshot(payload.RoomID) {
		if entry.SocketID == cl.ID {
			continue
		}
		if target, ok := c.registry.Get(entry.SocketID); ok {
			target.send(env)
		}
	}
	metrics.EventsOut.WithLabelValues(EventTyping).Inc()
}

// handleChat moves the durable post off the reactor goroutine; the relay's
// per-room lock keeps the cap check serialized regardless.
func (c *Core) handleChat(cl *Client, data json.RawMessage) {
	var payload ChatMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), chatPostTimeout)
		defer cancel()

		c.chat.Post(ctx, cl.ID, payload.RoomID, payload.Message)
	}()
}

// handleDisconnect prunes the roster by channelId (never by userId, so a
// user's other live session in the same room survives) and broadcasts the
// updated roster if an entry was removed.
func (c *Core) handleDisconnect(cl *Client) {
	c.registry.Remove(cl.ID)

	roomID, roster, removed := c.roster.Leave(cl.ID)
	if removed {
		c.ToRoom(roomID, NewPresenceUpdate(roster))
	}

	cl.Close()
}

// ToRoom delivers an envelope to every channel currently joined to the room.
func (c *Core) ToRoom(roomID string, env *Envelope) {
	for _, entry := range c.roster.Snapshot(roomID) {
		if cl, ok := c.registry.Get(entry.SocketID); ok {
			cl.send(env)
		}
	}
	metrics.EventsOut.WithLabelValues(env.Event).Inc()
}

// ToChannel delivers an envelope to a single channel, if it is still live.
func (c *Core) ToChannel(channelID string, env *Envelope) {
	if cl, ok := c.registry.Get(channelID); ok {
		cl.send(env)
	}
	metrics.EventsOut.WithLabelValues(env.Event).Inc()
}

// Count reports the number of live channels.
func (c *Core) Count() int {
	return c.registry.Count()
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

// Tasks exposes the task broadcast relay to the REST layer.
func (c *Core) Tasks() *TaskRelay {
	return c.tasks
}

// Chat exposes the durable message relay's history and clear operations to
// the REST layer.
func (c *Core) Chat() *ChatRelay {
	return c.chat
}

func (c *Core) Shutdown() {
	c.once.Do(func() {
		close(c.shutdown)
		c.registry.DisconnectAll()
	})
}
