// Package notify delivers the user-visible outcome of reservation operations:
// the alert on a failed load and the status line after a create or cancel.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message}
}

func Error(message string) Notification {
	return Notification{Level: LevelError, Message: message}
}

// Notifier shows a notification to whoever is operating the client.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Log writes notifications as structured log entries.
type Log struct {
	Log *logrus.Entry
}

func (l *Log) Notify(_ context.Context, n Notification) error {
	entry := l.Log.WithField("notification", n.Level)

	if n.Level == LevelError {
		entry.Error(n.Message)
		return nil
	}

	entry.Info(n.Message)

	return nil
}

// Writer prints one status line per notification, prefixed with a mark for its level.
type Writer struct {
	Out io.Writer
}

func (w *Writer) Notify(_ context.Context, n Notification) error {
	_, err := fmt.Fprintf(w.Out, "%s %s\n", mark(n.Level), n.Message)
	if err != nil {
		return fmt.Errorf("error writing notification %w", err)
	}

	return nil
}

func mark(level Level) string {
	if level == LevelError {
		return "❌"
	}
	return "✅"
}

// Multi fans a notification out to every notifier, stopping at the first failure.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			return err
		}
	}

	return nil
}
