package logging

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

// LogFields represents structured logging key/value pairs.
type LogFields map[string]any

// ServiceLogger is the logging contract used by the extractor and the
// middleware chain.
type ServiceLogger interface {
	With(fields LogFields) ServiceLogger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
}

var logLevelMapping = map[slog.Level]slog.Level{
	slog.LevelDebug: slog.LevelDebug,
	slog.LevelInfo:  slog.LevelInfo,
	slog.LevelWarn:  slog.LevelWarn,
	slog.LevelError: slog.LevelError,
}

// NewSlogServiceLogger wraps a slog.Logger.
func NewSlogServiceLogger(log *slog.Logger) ServiceLogger {
	if log == nil {
		panic("propflow: slog logger cannot be nil")
	}
	return NewWatermillServiceLogger(watermill.NewSlogLoggerWithLevelMapping(log, logLevelMapping))
}

// NewWatermillServiceLogger logs through an existing Watermill LoggerAdapter.
// Passing the result of NewWatermillAdapter returns the ServiceLogger it wraps.
func NewWatermillServiceLogger(logger watermill.LoggerAdapter) ServiceLogger {
	switch typed := logger.(type) {
	case nil:
		panic("propflow: watermill logger cannot be nil")
	case *routerLogger:
		return typed.base
	}
	return &adapterLogger{inner: logger}
}

// NewNopServiceLogger discards everything. Processors fall back to it when no
// logger is supplied.
func NewNopServiceLogger() ServiceLogger {
	return NewWatermillServiceLogger(watermill.NopLogger{})
}

type adapterLogger struct {
	inner watermill.LoggerAdapter
}

func (a *adapterLogger) With(fields LogFields) ServiceLogger {
	if len(fields) == 0 {
		return a
	}
	return &adapterLogger{inner: a.inner.With(watermill.LogFields(fields))}
}

func (a *adapterLogger) Debug(msg string, fields LogFields) {
	a.inner.Debug(msg, watermill.LogFields(fields))
}

func (a *adapterLogger) Info(msg string, fields LogFields) {
	a.inner.Info(msg, watermill.LogFields(fields))
}

func (a *adapterLogger) Error(msg string, err error, fields LogFields) {
	a.inner.Error(msg, err, watermill.LogFields(fields))
}

// ComponentWatermill tags entries written by routers and pub/subs through
// NewWatermillAdapter.
const ComponentWatermill = "watermill"

// NewWatermillAdapter hands a ServiceLogger to routers and pub/subs built by
// the host. Entries carry component=watermill so router output can be told
// apart from extractor output. Watermill's trace level is folded into debug.
func NewWatermillAdapter(log ServiceLogger) watermill.LoggerAdapter {
	if log == nil {
		panic("propflow: ServiceLogger cannot be nil")
	}
	return &routerLogger{base: log, tagged: log.With(LogFields{"component": ComponentWatermill})}
}

type routerLogger struct {
	base   ServiceLogger
	tagged ServiceLogger
}

func (r *routerLogger) Error(msg string, err error, fields watermill.LogFields) {
	r.tagged.Error(msg, err, LogFields(fields))
}

func (r *routerLogger) Info(msg string, fields watermill.LogFields) {
	r.tagged.Info(msg, LogFields(fields))
}

func (r *routerLogger) Debug(msg string, fields watermill.LogFields) {
	r.tagged.Debug(msg, LogFields(fields))
}

func (r *routerLogger) Trace(msg string, fields watermill.LogFields) {
	r.tagged.Debug(msg, LogFields(fields))
}

func (r *routerLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &routerLogger{base: r.base, tagged: r.tagged.With(LogFields(fields))}
}
