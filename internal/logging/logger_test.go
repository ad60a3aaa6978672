package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerTo(t *testing.T) {
	t.Run("writes JSON entries at or above the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, LevelInfo)

		logger.Debug("should be filtered")
		logger.Info("hello", "player", "org.mpris.MediaPlayer2.test")

		lines := nonEmptyLines(buf.String())
		if len(lines) != 1 {
			t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
		}

		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v", err)
		}
		if entry["msg"] != "hello" {
			t.Errorf("expected msg 'hello', got %v", entry["msg"])
		}
		if entry["player"] != "org.mpris.MediaPlayer2.test" {
			t.Errorf("expected player attribute, got %v", entry["player"])
		}
	})

	t.Run("unrecognized level defaults to INFO", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, "VERBOSE")

		logger.Debug("filtered")
		logger.Warn("kept")

		lines := nonEmptyLines(buf.String())
		if len(lines) != 1 {
			t.Fatalf("expected 1 log line, got %d", len(lines))
		}
	})
}

func TestLoggerWith(t *testing.T) {
	t.Run("child loggers inherit attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, LevelDebug)

		child := logger.WithPlayer("org.mpris.MediaPlayer2.spotify").WithOwner(":1.42")
		child.Info("state change", "playback", "Playing")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v", err)
		}
		if entry["player"] != "org.mpris.MediaPlayer2.spotify" {
			t.Errorf("expected player attribute, got %v", entry["player"])
		}
		if entry["owner"] != ":1.42" {
			t.Errorf("expected owner attribute, got %v", entry["owner"])
		}
		if entry["playback"] != "Playing" {
			t.Errorf("expected playback attribute, got %v", entry["playback"])
		}
	})

	t.Run("parent logger is not modified by child attrs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, LevelDebug)

		_ = logger.WithOwner(":1.7")
		logger.Info("plain")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v", err)
		}
		if _, ok := entry["owner"]; ok {
			t.Error("parent logger should not carry the child's owner attribute")
		}
	})

	t.Run("With skips non-string keys", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, LevelDebug)

		logger.With(42, "ignored", "kept", "value").Info("msg")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v", err)
		}
		if entry["kept"] != "value" {
			t.Errorf("expected kept attribute, got %v", entry["kept"])
		}
	})
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic and must not write anywhere observable.
	logger.Error("discarded", "key", "value")
	logger.WithPlayer("x").Info("discarded")
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
