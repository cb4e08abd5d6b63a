package gateway

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/calliof/switchboard/internal/logging"
	"github.com/calliof/switchboard/internal/protocol"
)

// ErrConnClosed is returned by Send after the connection is closed.
var ErrConnClosed = errors.New("connection closed")

// wsConn wraps a websocket connection with a write lock so the hub can
// send to it from any goroutine. It implements hub.Conn.
type wsConn struct {
	socket      *websocket.Conn
	connectedAt time.Time
	log         *logging.Logger

	mu     sync.Mutex
	closed bool
}

func newWSConn(socket *websocket.Conn, log *logging.Logger) *wsConn {
	return &wsConn{socket: socket, connectedAt: time.Now(), log: log}
}

// Send writes an envelope to the socket. Thread-safe.
func (c *wsConn) Send(env protocol.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	return c.socket.WriteJSON(env)
}

// Close closes the underlying socket. Idempotent.
func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.socket.Close()
}

// isClosed reports whether Close was called on this side. The read loop
// uses it to tell a deliberate takeover from a transport failure.
func (c *wsConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
