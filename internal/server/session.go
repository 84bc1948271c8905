package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/notify"
	"github.com/lox/concentration/internal/protocol"
	"github.com/lox/concentration/internal/randutil"
	"github.com/lox/concentration/internal/surface"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBufferSize = 64
)

// ErrSessionClosed is returned when sending on a closed session
var ErrSessionClosed = errors.New("session closed")

// Session is one connected player and the game they are playing. All game
// mutations happen on the session's read goroutine.
type Session struct {
	id     string
	conn   *websocket.Conn
	server *Server
	rng    randutil.Source
	logger *log.Logger

	send      chan *protocol.Message
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	game    *game.Game
	surface *surface.Surface
}

func newSession(id string, conn *websocket.Conn, server *Server, rng randutil.Source) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		id:     id,
		conn:   conn,
		server: server,
		rng:    rng,
		logger: server.logger.WithPrefix("session").With("session", id),
		send:   make(chan *protocol.Message, sendBufferSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Done is closed once the session has ended
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Start greets the peer and begins handling the connection
func (s *Session) Start() {
	go s.writePump()
	s.sendData(protocol.TypeWelcome, protocol.WelcomeData{Session: s.id})
	go s.readPump()
}

// Close ends the session
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		err = s.conn.Close()
	})
	return err
}

// SendMessage queues a message for the peer. A peer that cannot keep up is
// disconnected.
func (s *Session) SendMessage(msg *protocol.Message) error {
	select {
	case <-s.ctx.Done():
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return ErrSessionClosed
	default:
		s.logger.Warn("Session send buffer full, closing connection")
		_ = s.Close()
		return ErrSessionClosed
	}
}

func (s *Session) sendData(t protocol.MessageType, data any) {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	if err := s.SendMessage(msg); err != nil {
		s.logger.Debug("Dropped message", "type", t, "error", err)
	}
}

func (s *Session) sendError(code, message string) {
	s.sendData(protocol.TypeError, protocol.ErrorData{Code: code, Message: message})
}

// readPump handles incoming messages from the client
func (s *Session) readPump() {
	defer func() { _ = s.Close() }()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if err := s.handleMessage(&msg); err != nil {
			s.logger.Error("Ending session", "error", err)
			// Let the error frame flush before the connection goes away
			s.drain()
			return
		}
	}
}

// writePump handles outgoing messages to the client
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.Close()
	}()

	for {
		select {
		case message := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// drain waits briefly for queued messages to be written
func (s *Session) drain() {
	deadline := time.Now().Add(writeWait)
	for len(s.send) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "game error"),
		time.Now().Add(time.Second))
}

// handleMessage processes one client message. A returned error ends the
// session.
func (s *Session) handleMessage(msg *protocol.Message) error {
	s.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case protocol.TypeNewGame:
		var data protocol.NewGameData
		if len(msg.Data) > 0 {
			if err := msg.Decode(&data); err != nil {
				s.sendError(protocol.CodeInvalidMessage, err.Error())
				return nil
			}
		}
		s.newGame(data.Size)
		return nil

	case protocol.TypeActivate:
		var data protocol.ActivateData
		if err := msg.Decode(&data); err != nil {
			s.sendError(protocol.CodeInvalidMessage, err.Error())
			return nil
		}
		return s.activate(data.Tile)

	default:
		s.sendError(protocol.CodeInvalidMessage, "unknown message type: "+string(msg.Type))
		return nil
	}
}

// newGame replaces the session's game with a freshly dealt one. An invalid
// size leaves the current game untouched.
func (s *Session) newGame(size int) {
	cfg := s.server.config
	if size == 0 {
		size = cfg.Size
	}

	surf := surface.New()
	g, err := game.New(game.Config{
		Size:           size,
		Alphabet:       cfg.Alphabet,
		Rand:           s.rng,
		Renderer:       surf,
		Notifier:       notify.Func(s.notify),
		NotifyDuration: cfg.NotifyDuration,
		Container:      cfg.Container,
		Logger:         s.logger,
	})
	if err == nil {
		err = g.Start()
	}
	if err != nil {
		s.logger.Warn("Rejected new game", "size", size, "error", err)
		s.sendError(protocol.CodeInvalidBoard, err.Error())
		return
	}

	s.game = g
	s.surface = surf
	s.pushBoard()
}

// activate routes the request through the renderer-bound handler, as a
// click on the cell would.
func (s *Session) activate(index int) error {
	if s.game == nil {
		s.sendError(protocol.CodeNoGame, "no game in progress")
		return nil
	}

	tile, err := s.game.Board().Tile(index)
	if err != nil {
		s.sendError(protocol.CodeTileOutOfRange, err.Error())
		return nil
	}

	if err := s.surface.Activate(tile.Cell()); err != nil {
		if errors.Is(err, game.ErrInvariantViolation) {
			s.sendError(protocol.CodeInvariantViolation, err.Error())
		}
		return err
	}

	s.pushBoard()
	return nil
}

func (s *Session) notify(message string, d time.Duration) {
	s.sendData(protocol.TypeNotify, protocol.NotifyData{
		Message:    message,
		DurationMs: d.Milliseconds(),
	})
}

func (s *Session) pushBoard() {
	board := s.game.Board()
	s.sendData(protocol.TypeBoard, s.surface.Snapshot(board.Size(), s.game.Solved()))
}
