package events

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes events to a zap logger: info for data changes and logins,
// warn for rejected credentials or tokens, error for internal failures.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(_ context.Context, e Event) {
	fields := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("entity", e.Entity),
	}
	if e.EntityID != "" {
		fields = append(fields, zap.String("entity_id", e.EntityID))
	}
	if e.Label != "" {
		fields = append(fields, zap.String("label", e.Label))
	}
	if e.Actor != "" {
		fields = append(fields, zap.String("actor", e.Actor))
	}
	if e.Detail != "" {
		fields = append(fields, zap.String("detail", e.Detail))
	}

	msg := string(e.Type)
	switch e.Type {
	case TypeLoginFailed, TypeAuthFailed:
		s.log.Warn(msg, fields...)
	case TypeInternalError:
		s.log.Error(msg, fields...)
	default:
		s.log.Info(msg, fields...)
	}
}
