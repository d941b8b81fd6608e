package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// connWrapper serializes writes to a gorilla connection, which allows only
// one concurrent writer. A nil inner conn makes every method a no-op so
// tests can drive clients without a live socket.
type connWrapper struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newConnWrapper(conn *websocket.Conn) *connWrapper {
	return &connWrapper{conn: conn}
}

func (w *connWrapper) WriteJSON(v any) error {
	if w.conn == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *connWrapper) WriteControl(messageType int, data []byte) error {
	if w.conn == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(messageType, data)
}

func (w *connWrapper) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Close()
}
