package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, Config{Level: "info", Format: "json"}))
	log.Debug("hidden")
	log.Info("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewHandler(&buf, Config{Level: "debug", Format: "text"})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithSubmission(context.Background(), "remarks", "sub-1")
	ctx = WithSession(ctx, "task-42")
	Info(ctx, "dispatching")

	out := buf.String()
	for _, want := range []string{"form=remarks", "submission_id=sub-1", "session=task-42", "msg=dispatching"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output: %s", want, out)
		}
	}
}

func TestWithContextEmpty(t *testing.T) {
	if WithContext(context.Background()) == nil {
		t.Fatal("expected non-nil logger")
	}
}
