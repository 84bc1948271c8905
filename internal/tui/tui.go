// Package tui is the terminal front end. It plays a local game, or mirrors a
// game hosted by a server when given a Remote.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/notify"
	"github.com/lox/concentration/internal/protocol"
	"github.com/lox/concentration/internal/randutil"
	"github.com/lox/concentration/internal/sessionid"
	"github.com/lox/concentration/internal/surface"
)

// ErrDisconnected is returned when the server goes away mid-game
var ErrDisconnected = errors.New("disconnected from server")

// Remote is a game hosted by a server. *client.Client satisfies it.
type Remote interface {
	Messages() <-chan *protocol.Message
	NewGame(size int) error
	Activate(index int) error
}

// Options configures the model. Without a Remote the game runs in process.
type Options struct {
	Size           int
	Alphabet       deck.Alphabet
	Rand           randutil.Source
	NotifyDuration time.Duration
	Container      string
	Clock          quartz.Clock
	Logger         *log.Logger
	Remote         Remote
}

// Model is the Bubble Tea model for one player
type Model struct {
	opts   Options
	logger *log.Logger
	keys   keyMap
	help   help.Model

	toast   *notify.Toast
	toastCh chan struct{}

	// game is nil in remote mode; the surface is rebuilt from each snapshot
	game    *game.Game
	surface *surface.Surface
	size    int
	solved  bool
	session string

	cursor   int
	status   string
	err      error
	quitting bool
}

type toastMsg struct{}

type serverMsg struct {
	msg *protocol.Message
}

type disconnectedMsg struct{}

// New creates a model and deals the first game. In remote mode the first
// board arrives from the server.
func New(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := &Model{
		opts:    opts,
		logger:  opts.Logger.WithPrefix("tui"),
		keys:    defaultKeyMap(),
		help:    help.New(),
		toastCh: make(chan struct{}, 1),
	}
	m.toast = notify.NewToast(opts.Clock, m.toastChanged)

	if opts.Remote != nil {
		if err := opts.Remote.NewGame(opts.Size); err != nil {
			return nil, fmt.Errorf("failed to request game: %w", err)
		}
		return m, nil
	}

	if err := m.newLocalGame(); err != nil {
		return nil, err
	}
	return m, nil
}

// Err returns the error that ended the program, if any
func (m *Model) Err() error {
	return m.err
}

// Init starts listening for toast expiry and server messages
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForToast()}
	if m.opts.Remote != nil {
		cmds = append(cmds, m.waitForServer())
	}
	return tea.Batch(cmds...)
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case toastMsg:
		return m, m.waitForToast()

	case serverMsg:
		m.handleServerMessage(msg.msg)
		return m, m.waitForServer()

	case disconnectedMsg:
		if !m.quitting {
			m.err = ErrDisconnected
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Select):
		if err := m.activate(); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, m.keys.New):
		if err := m.newGame(); err != nil {
			return m.fail(err)
		}
	}
	return m, nil
}

func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("Game error", "error", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) move(dr, dc int) {
	if m.size == 0 {
		return
	}
	row := min(max(m.cursor/m.size+dr, 0), m.size-1)
	col := min(max(m.cursor%m.size+dc, 0), m.size-1)
	m.cursor = row*m.size + col
}

func (m *Model) activate() error {
	if m.surface == nil || m.cursor >= m.surface.Len() {
		return nil
	}

	if err := m.surface.Activate(m.cellAt(m.cursor)); err != nil {
		return err
	}
	if m.game != nil {
		m.solved = m.game.Solved()
	}
	return nil
}

func (m *Model) newGame() error {
	if m.opts.Remote != nil {
		return m.opts.Remote.NewGame(m.opts.Size)
	}
	return m.newLocalGame()
}

func (m *Model) newLocalGame() error {
	surf := surface.New()
	g, err := game.New(game.Config{
		Size:           m.opts.Size,
		Alphabet:       m.opts.Alphabet,
		Rand:           m.opts.Rand,
		Renderer:       surf,
		Notifier:       notify.Multi{m.toast, notify.NewLogger(m.opts.Logger)},
		NotifyDuration: m.opts.NotifyDuration,
		Container:      m.opts.Container,
		Logger:         m.opts.Logger,
	})
	if err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}

	m.game = g
	m.surface = surf
	m.size = g.Board().Size()
	m.solved = g.Solved()
	m.cursor = 0
	m.status = ""
	m.toast.Dismiss()

	m.logger.Info("Dealt new game", "size", m.size)
	return nil
}

// cellAt maps a board position to its renderer cell
func (m *Model) cellAt(i int) game.Cell {
	if m.game != nil {
		if t, err := m.game.Board().Tile(i); err == nil {
			return t.Cell()
		}
	}
	return game.Cell(i)
}

func (m *Model) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeWelcome:
		var data protocol.WelcomeData
		if err := msg.Decode(&data); err != nil {
			m.logger.Warn("Bad welcome", "error", err)
			return
		}
		if err := sessionid.Validate(data.Session); err != nil {
			m.logger.Warn("Bad session ID", "session", data.Session, "error", err)
			return
		}
		m.session = data.Session
		m.logger.Info("Joined session", "session", data.Session)

	case protocol.TypeBoard:
		var data protocol.BoardData
		if err := msg.Decode(&data); err != nil {
			m.logger.Warn("Bad board", "error", err)
			return
		}
		if data.Size != m.size || len(data.Cells) != m.surfaceLen() {
			m.cursor = 0
		}
		m.surface = surface.Load(data, m.opts.Remote.Activate)
		m.size = data.Size
		m.solved = data.Solved
		m.status = ""

	case protocol.TypeNotify:
		var data protocol.NotifyData
		if err := msg.Decode(&data); err != nil {
			m.logger.Warn("Bad notification", "error", err)
			return
		}
		m.toast.Show(data.Message, data.Duration())

	case protocol.TypeError:
		var data protocol.ErrorData
		if err := msg.Decode(&data); err != nil {
			m.logger.Warn("Bad error message", "error", err)
			return
		}
		m.logger.Warn("Server error", "code", data.Code, "message", data.Message)
		m.status = data.Message

	default:
		m.logger.Debug("Ignoring message", "type", msg.Type)
	}
}

func (m *Model) surfaceLen() int {
	if m.surface == nil {
		return 0
	}
	return m.surface.Len()
}

// toastChanged runs on the toast's timer goroutine; it only wakes the
// program so the next View drops the expired message.
func (m *Model) toastChanged() {
	select {
	case m.toastCh <- struct{}{}:
	default:
	}
}

func (m *Model) waitForToast() tea.Cmd {
	return func() tea.Msg {
		<-m.toastCh
		return toastMsg{}
	}
}

func (m *Model) waitForServer() tea.Cmd {
	messages := m.opts.Remote.Messages()
	return func() tea.Msg {
		msg, ok := <-messages
		if !ok {
			return disconnectedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Concentration"))
	if m.session != "" {
		b.WriteString(" ")
		b.WriteString(InfoStyle.Render(m.session))
	}
	b.WriteString("\n\n")

	if m.surface == nil {
		b.WriteString(InfoStyle.Render("Waiting for board..."))
	} else {
		b.WriteString(m.renderBoard())
	}
	b.WriteString("\n\n")

	if message, ok := m.toast.Current(); ok {
		b.WriteString(toastStyle(message).Render(message))
	}
	b.WriteString("\n")

	switch {
	case m.status != "":
		b.WriteString(ErrorStyle.Render(m.status))
	case m.solved && m.surfaceLen() > 0:
		b.WriteString(SuccessStyle.Render("All pairs found! Press n for a new game."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderBoard() string {
	rows := make([]string, 0, m.size)
	for r := 0; r < m.size; r++ {
		tiles := make([]string, 0, m.size)
		for c := 0; c < m.size; c++ {
			tiles = append(tiles, m.renderTile(r*m.size+c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderTile(i int) string {
	c := m.cellAt(i)

	label := "?"
	style := HiddenTileStyle
	if m.surface.FaceUp(c) {
		label = string(m.surface.Symbol(c))
		style = SelectedTileStyle
	}

	switch {
	case m.surface.HasFlag(c, game.FlagFailed):
		style = FailedTileStyle
	case m.surface.HasFlag(c, game.FlagMatched):
		style = MatchedTileStyle
	}

	if i == m.cursor {
		style = style.Inherit(CursorStyle)
	}
	return style.Render(label)
}

func toastStyle(message string) lipgloss.Style {
	if message == game.MessageMatch {
		return SuccessStyle
	}
	return WarningStyle
}
