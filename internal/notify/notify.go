// Package notify implements game.Notifier for the different hosts.
package notify

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/game"
)

// Logger writes every message to a logger. Used by headless hosts.
type Logger struct {
	logger *log.Logger
}

// NewLogger returns a notifier logging at info level
func NewLogger(logger *log.Logger) *Logger {
	return &Logger{logger: logger.WithPrefix("notify")}
}

func (l *Logger) Show(message string, d time.Duration) {
	l.logger.Info(message, "duration", d)
}

// Multi fans each message out to several notifiers in order
type Multi []game.Notifier

func (m Multi) Show(message string, d time.Duration) {
	for _, n := range m {
		if n != nil {
			n.Show(message, d)
		}
	}
}

// Func adapts a plain function to game.Notifier
type Func func(message string, d time.Duration)

func (f Func) Show(message string, d time.Duration) {
	f(message, d)
}
