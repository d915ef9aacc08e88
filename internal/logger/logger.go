// Package logger provides structured logging using zerolog.
package logger

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Options controls logger initialization. Zero values give info level on stdout.
type Options struct {
	Level string
	File  string
	Dev   bool
}

// Init initializes the global logger.
func Init(opts Options) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: milliTimeFormat,
		NoColor:    !opts.Dev,
	}

	if opts.File != "" {
		f, ferr := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
		}
	}

	log.Logger = log.Output(output).With().Timestamp().Caller().Str("service", "war-simulator").Logger()

	log.Info().
		Str("level", level.String()).
		Bool("dev", opts.Dev).
		Msg("Logger initialized")
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}

// NewRequestID generates a cryptographically secure random 8-character alphanumeric string.
func NewRequestID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req%06d", time.Now().UnixNano()%1000000)
	}

	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}

// WithRequestID returns a new context with the given request ID stored.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ForRequest returns a logger enriched with the request ID from context.
func ForRequest(ctx context.Context) *zerolog.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return &log.Logger
	}
	l := log.Logger.With().Str("requestId", id).Logger()
	return &l
}

// LogBody logs a request or response body at debug level, truncating past 1000 bytes.
func LogBody(logger zerolog.Logger, field string, body []byte) {
	if len(body) == 0 {
		return
	}
	if len(body) > 1000 {
		logger.Debug().Str(field, string(body[:1000])).Bool("truncated", true).Msg("Body")
		return
	}
	logger.Debug().Str(field, string(body)).Msg("Body")
}
