package logging

import (
	"github.com/rs/zerolog"
)

// NewZerologServiceLogger adapts a zerolog.Logger. Fields are attached with
// zerolog's Fields so they keep their native types in the output.
func NewZerologServiceLogger(log zerolog.Logger) ServiceLogger {
	return &zerologServiceLogger{log: log}
}

type zerologServiceLogger struct {
	log zerolog.Logger
}

func (z *zerologServiceLogger) With(fields LogFields) ServiceLogger {
	if len(fields) == 0 {
		return z
	}
	return &zerologServiceLogger{log: z.log.With().Fields(map[string]any(fields)).Logger()}
}

func (z *zerologServiceLogger) Debug(msg string, fields LogFields) {
	withFields(z.log.Debug(), fields).Msg(msg)
}

func (z *zerologServiceLogger) Info(msg string, fields LogFields) {
	withFields(z.log.Info(), fields).Msg(msg)
}

func (z *zerologServiceLogger) Error(msg string, err error, fields LogFields) {
	withFields(z.log.Error().Err(err), fields).Msg(msg)
}

func withFields(event *zerolog.Event, fields LogFields) *zerolog.Event {
	if len(fields) == 0 {
		return event
	}
	// zerolog only recognises the unnamed map type.
	return event.Fields(map[string]any(fields))
}
