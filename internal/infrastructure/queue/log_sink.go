package queue

import (
	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/core/ports"
)

// LogSink delivers notifications to the structured log. It stands in for a
// real push channel (websocket, email) and keeps the delivery path visible
// in development and in tests.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(n ports.Notification) {
	ev := s.log.Info()
	if n.Variant == ports.NotifyDestructive {
		ev = s.log.Warn()
	}
	ev.Str("title", n.Title).
		Str("description", n.Description).
		Str("subject", n.Subject).
		Msg("notification")
}
