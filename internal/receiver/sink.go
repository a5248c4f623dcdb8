package receiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Notification - одно принятое уведомление. Живёт до конца обработки запроса.
type Notification struct {
	ReceivedAt  time.Time
	Method      string
	Path        string
	RemoteAddr  string
	ContentType string
	RequestID   string
	Body        []byte
}

// PayloadSink показывает оператору тело уведомления.
type PayloadSink interface {
	Expose(ctx context.Context, n Notification) error
}

// SinkFunc позволяет использовать функцию как PayloadSink.
type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Expose(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// WriterSink печатает тело как есть и перевод строки.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Expose(_ context.Context, n Notification) error {
	if _, err := s.W.Write(n.Body); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if _, err := io.WriteString(s.W, "\n"); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// LogSink пишет запись о каждом уведомлении; тело - только на уровне debug.
type LogSink struct {
	Logger *logrus.Logger
}

func (s LogSink) Expose(_ context.Context, n Notification) error {
	entry := s.Logger.WithFields(logrus.Fields{
		"method":       n.Method,
		"path":         n.Path,
		"remote":       n.RemoteAddr,
		"content_type": n.ContentType,
		"request_id":   n.RequestID,
		"size":         len(n.Body),
	})
	if s.Logger.IsLevelEnabled(logrus.DebugLevel) {
		entry = entry.WithField("payload", string(n.Body))
	}
	entry.Info("notification received")
	return nil
}

// MultiSink передаёт уведомление всем приёмникам и собирает их ошибки.
type MultiSink []PayloadSink

func (m MultiSink) Expose(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Expose(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
