package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection to one player
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   *Session
	logger    *log.Logger
	clock     quartz.Clock
	idle      time.Duration
	idleTimer *quartz.Timer
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	sendMu    sync.RWMutex
	closed    bool
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, session *Session, clock quartz.Clock, idle time.Duration, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		session: session,
		logger:  logger.WithPrefix("conn").With("session", session.ID()),
		clock:   clock,
		idle:    idle,
		ctx:     ctx,
		cancel:  cancel,
	}
	session.send = c.sendData
	return c
}

// Start begins handling the connection
func (c *Connection) Start() {
	if c.idle > 0 {
		c.idleTimer = c.clock.AfterFunc(c.idle, func() {
			c.logger.Info("Closing idle connection", "idle", c.idle)
			_ = c.Close()
		}, "idle")
	}
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.idleTimer != nil {
			c.idleTimer.Stop()
		}
		c.cancel()

		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()

		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		go func() { _ = c.Close() }()
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var (
	ErrConnectionClosed = errors.New("connection closed")
)

// readPump handles incoming messages from the client. Messages are handled
// in order on this goroutine, so the session needs no locking.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if c.idleTimer != nil {
			c.idleTimer.Reset(c.idle, "idle")
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.session.sendError(ErrorCodeInvalidMessage, "Malformed message")
			continue
		}
		c.session.Handle(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendData wraps data in a message and queues it
func (c *Connection) sendData(t MessageType, data any) {
	msg, err := NewMessage(t, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", t, "error", err)
	}
}
