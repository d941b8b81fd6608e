package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 32768 // 32KB
)

// Client is one live channel: a bidirectional connection bound to an
// authenticated identity. RoomID is set at most once, by the joinRoom event;
// a channel does not switch rooms without reconnecting.
type Client struct {
	conn    *connWrapper
	Message chan *Envelope

	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	Fullname string `json:"fullname"`

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(conn *websocket.Conn, userID, fullname string) *Client {
	return &Client{
		conn:     newConnWrapper(conn),
		Message:  make(chan *Envelope, 64), // buffered to avoid dead-locks on slow clients
		ID:       uuid.NewString(),
		UserID:   userID,
		Fullname: fullname,
		closed:   make(chan struct{}),
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

func (c *Client) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// send queues an envelope without blocking the caller; a full buffer means
// the client is too slow and the event is dropped.
func (c *Client) send(env *Envelope) {
	if c.IsClosed() {
		return
	}

	select {
	case c.Message <- env:
	default:
		log.Printf("client %s buffer full, dropping %s", c.ID, env.Event)
	}
}

// ReadMessages pumps inbound frames into the core until the connection dies.
func (c *Client) ReadMessages(core *Core) {
	defer func() {
		core.Unregister() <- c
		c.Close()
	}()

	c.conn.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))

	c.conn.conn.SetPongHandler(func(string) error {
		_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.closed:
			return
		default:
		}

		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			return
		}

		if len(raw) == 0 {
			continue
		}

		var env inboundEnvelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			log.Printf("malformed frame from client %s, dropping", c.ID)
			continue
		}

		core.Dispatch(c, env.Event, env.Data)
	}
}

// WriteMessages drains the outbound buffer and keeps the connection alive
// with pings.
func (c *Client) WriteMessages() {
	defer c.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case env := <-c.Message:
			_ = c.conn.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteJSON(env); err != nil {
				log.Printf("ws write error (client %s): %v", c.ID, err)
				return
			}

		case <-ticker.C:
			_ = c.conn.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteControl(websocket.PingMessage, nil); err != nil {
				log.Printf("ping error (client %s): %v", c.ID, err)
				return
			}

		case <-c.closed:
			return
		}
	}
}
