// Package server manages individual WebSocket clients, handling read/write
// pumps, rate limiting, and lifecycle control for each connection.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/registry"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Close codes sent with a server-initiated close frame.
const (
	CloseReplaced      = 4001
	CloseServerClosing = websocket.CloseGoingAway
	CloseEvicted       = websocket.ClosePolicyViolation
)

const (
	reasonShutdown   = "server shutting down"
	reasonSlowClient = "send buffer full"
)

var _ registry.Handle = (*Client)(nil)

// clientSettings are the per-connection limits derived from Config.
type clientSettings struct {
	maxMessageSize int64
	sendBuffer     int
	pingInterval   time.Duration
	pongWait       time.Duration
	writeWait      time.Duration
	rateLimit      RateLimitConfig
}

func settingsFrom(cfg Config) clientSettings {
	return clientSettings{
		maxMessageSize: cfg.MaxMessageSize,
		sendBuffer:     cfg.SendBufferSize,
		pingInterval:   cfg.PingInterval,
		pongWait:       cfg.PongWait,
		writeWait:      cfg.WriteWait,
		rateLimit:      cfg.RateLimit(),
	}
}

// Client is one authenticated WebSocket connection. It is the registry
// handle for its user while it is the newest connection of that user.
type Client struct {
	id   uuid.UUID
	user event.UserID
	conn *websocket.Conn
	hub  *Hub
	addr string

	send chan []byte
	done chan struct{}

	mu          sync.Mutex
	closed      bool
	closeCode   int
	closeReason string

	limiter  *rate.Limiter
	settings clientSettings
	log      *slog.Logger
}

func newClient(conn *websocket.Conn, hub *Hub, user event.UserID, addr string, settings clientSettings, log *slog.Logger) *Client {
	id := uuid.New()
	if conn != nil {
		conn.SetReadLimit(settings.maxMessageSize)
	}
	every := rate.Every(settings.rateLimit.RefillInterval / time.Duration(settings.rateLimit.Burst))

	return &Client{
		id:       id,
		user:     user,
		conn:     conn,
		hub:      hub,
		addr:     addr,
		send:     make(chan []byte, settings.sendBuffer),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(every, settings.rateLimit.Burst),
		settings: settings,
		log:      log.With("user", user, "handle", id, "addr", addr),
	}
}

func (c *Client) ID() uuid.UUID        { return c.id }
func (c *Client) UserID() event.UserID { return c.user }

// Send queues an event without blocking. A client whose buffer is full is
// evicted.
func (c *Client) Send(f *event.Frame) bool {
	data, err := f.Bytes()
	if err != nil {
		c.log.Error("encode outbound event", "event", f.Event.Kind, "error", err)
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	select {
	case c.send <- data:
		c.mu.Unlock()
		return true
	default:
		c.mu.Unlock()
	}

	c.log.Warn("evicting slow client", "buffered", c.settings.sendBuffer)
	c.Close(reasonSlowClient)
	return false
}

// Close tells the client why it is being disconnected and stops the pumps
// once queued events are flushed.
func (c *Client) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.closeCode = closeCodeFor(reason)
	c.closeReason = reason

	if data, err := event.Encode(event.ForceDisconnect(reason)); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}
	close(c.done)
}

// markClosed stops the pumps after the peer went away.
func (c *Client) markClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

func closeCodeFor(reason string) int {
	switch reason {
	case registry.ReasonReplaced:
		return CloseReplaced
	case reasonShutdown:
		return CloseServerClosing
	default:
		return CloseEvicted
	}
}

// setupReadConnection configures read deadlines and pong handler for the WebSocket connection
func (c *Client) setupReadConnection() {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.settings.pongWait)); err != nil {
		c.log.Warn("set initial read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.settings.pongWait))
	})
}

// handleReadError logs the end of the read loop at a level matching its cause.
func (c *Client) handleReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.log.Warn("message exceeded maximum size", "limit", c.settings.maxMessageSize)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived):
		c.log.Info("client disconnected", "reason", err)
	case errors.Is(err, io.EOF) || isExpectedCloseError(err):
		c.log.Info("client connection closed", "reason", err)
	case websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseMessageTooBig):
		c.log.Warn("unexpected websocket close", "error", err)
	default:
		c.log.Debug("websocket read ended", "error", err)
	}
}

func (c *Client) readPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.markClosed()
		c.hub.unregisterClient(c)
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			c.log.Warn("close connection in readPump", "error", err)
		}
	}()

	c.setupReadConnection()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}
		if !c.limiter.Allow() {
			c.log.Warn("rate limit exceeded; discarding message",
				"burst", c.settings.rateLimit.Burst, "interval", c.settings.rateLimit.RefillInterval)
			continue
		}
		c.processMessage(ctx, raw)
	}
}

// processMessage decodes one frame and hands it to the core.
func (c *Client) processMessage(ctx context.Context, raw []byte) {
	in, err := event.DecodeInbound(raw)
	if err != nil {
		c.log.Warn("invalid message", "error", err)
		return
	}
	c.log.Debug("received event", "event", in.Name())
	c.hub.core.OnInboundEvent(ctx, c, in)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.settings.pingInterval)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for c.processWriteEvent(ticker) {
	}
}

// processWriteEvent waits for the next write event and returns false when the
// pump should stop processing.
func (c *Client) processWriteEvent(ticker *time.Ticker) bool {
	select {
	case message := <-c.send:
		return c.writeTextMessage(message)
	case <-ticker.C:
		return c.handlePing()
	case <-c.done:
		c.flush()
		c.writeCloseMessage()
		return false
	}
}

// closeConnection safely closes the WebSocket connection with proper error handling
func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		c.log.Warn("close connection in writePump", "error", err)
	}
}

// flush writes whatever is still queued, including a force_disconnect notice.
func (c *Client) flush() {
	for {
		select {
		case message := <-c.send:
			if !c.writeTextMessage(message) {
				return
			}
		default:
			return
		}
	}
}

// writeCloseMessage sends a close frame for server-initiated closes.
func (c *Client) writeCloseMessage() {
	c.mu.Lock()
	code, reason := c.closeCode, c.closeReason
	c.mu.Unlock()
	if code == 0 {
		return
	}

	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.settings.writeWait)); err != nil {
		if !isExpectedCloseError(err) {
			c.log.Debug("write close message", "error", err)
		}
	}
}

// writeTextMessage writes one event per frame, followed by any already queued.
func (c *Client) writeTextMessage(message []byte) bool {
	if !c.writeFrame(message) {
		return false
	}
	return c.writeQueuedMessages()
}

// writeQueuedMessages drains what was queued while the previous frame was written.
func (c *Client) writeQueuedMessages() bool {
	n := len(c.send)
	for i := 0; i < n; i++ {
		if !c.writeFrame(<-c.send) {
			return false
		}
	}
	return true
}

func (c *Client) writeFrame(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeWait)); err != nil {
		c.log.Warn("set write deadline", "error", err)
		return false
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		if !isExpectedCloseError(err) {
			c.log.Warn("write message", "error", err)
		}
		return false
	}
	return true
}

// handlePing sends a ping message to keep the connection alive
func (c *Client) handlePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeWait)); err != nil {
		c.log.Warn("set write deadline for ping", "error", err)
		return false
	}
	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.log.Debug("write ping", "error", err)
		return false
	}
	return true
}
