// Package client connects to a concentration server over WebSocket.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/concentration/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

// ErrClosed is returned when using a closed client
var ErrClosed = errors.New("client closed")

// Client is a WebSocket connection to a game server
type Client struct {
	conn     *websocket.Conn
	send     chan *protocol.Message
	messages chan *protocol.Message
	logger   *log.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Dial connects to serverURL. http and https URLs are converted to ws and
// wss, and an empty path defaults to /ws.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	wsURL, err := normalizeURL(serverURL)
	if err != nil {
		return nil, err
	}

	logger = logger.WithPrefix("client")
	logger.Info("Connecting to server", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	cctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:     conn,
		send:     make(chan *protocol.Message, 64),
		messages: make(chan *protocol.Message, 64),
		logger:   logger,
		ctx:      cctx,
		cancel:   cancel,
	}

	go c.readPump()
	go c.writePump()

	return c, nil
}

func normalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid server URL %q: unsupported scheme %q", raw, u.Scheme)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Messages delivers decoded server messages. The channel is closed when the
// connection ends.
func (c *Client) Messages() <-chan *protocol.Message {
	return c.messages
}

// Done is closed when the client has shut down
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.cancel()
		err = c.conn.Close()
		c.logger.Info("Disconnected from server")
	})
	return err
}

// NewGame asks for a freshly dealt board. Zero size uses the server default.
func (c *Client) NewGame(size int) error {
	return c.sendData(protocol.TypeNewGame, protocol.NewGameData{Size: size})
}

// Activate selects the tile at index
func (c *Client) Activate(index int) error {
	return c.sendData(protocol.TypeActivate, protocol.ActivateData{Tile: index})
}

func (c *Client) sendData(t protocol.MessageType, data any) error {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		return err
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrClosed
	default:
		return fmt.Errorf("send buffer full")
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		close(c.messages)
		_ = c.Close()
	}()

	for {
		var msg protocol.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.logger.Debug("Received message", "type", msg.Type)

		select {
		case c.messages <- &msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				_ = c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
