package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	FormKey         ContextKey = "form"
	SubmissionIDKey ContextKey = "submission_id"
	SessionKey      ContextKey = "session"
)

// Config holds logger configuration
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ParseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the handler described by cfg, writing to w.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Init installs the configured handler as the slog default. Logs go to
// stderr so they do not interleave with interactive prompts.
func Init(cfg Config) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, cfg)))
}

// WithSubmission stores the form name and submission id on ctx.
func WithSubmission(ctx context.Context, form, submissionID string) context.Context {
	ctx = context.WithValue(ctx, FormKey, form)
	return context.WithValue(ctx, SubmissionIDKey, submissionID)
}

// WithSession stores the draft session key on ctx.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// WithContext returns a logger with context values extracted
func WithContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if form, ok := ctx.Value(FormKey).(string); ok && form != "" {
		logger = logger.With("form", form)
	}
	if id, ok := ctx.Value(SubmissionIDKey).(string); ok && id != "" {
		logger = logger.With("submission_id", id)
	}
	if session, ok := ctx.Value(SessionKey).(string); ok && session != "" {
		logger = logger.With("session", session)
	}

	return logger
}

func Info(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
}
