package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerFormatsOutput(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		level      string
		assertions func(t *testing.T, output string)
	}{
		{
			name:   "console format is human readable",
			format: "console",
			level:  "info",
			assertions: func(t *testing.T, output string) {
				if !strings.Contains(output, "hello") || !strings.Contains(output, "1.1") {
					t.Fatalf("expected console output with message and field, got %q", output)
				}
			},
		},
		{
			name:   "json format starts with brace",
			format: "json",
			level:  "info",
			assertions: func(t *testing.T, output string) {
				if !strings.HasPrefix(strings.TrimSpace(output), "{") {
					t.Fatalf("expected JSON output, got %q", output)
				}
				if strings.Contains(output, "\x1b[") {
					t.Fatalf("JSON output must not carry colors, got %q", output)
				}
				if !strings.Contains(output, `"code":"1.1"`) {
					t.Fatalf("expected code field, got %q", output)
				}
			},
		},
		{
			name:   "level filters lower messages",
			format: "json",
			level:  "error",
			assertions: func(t *testing.T, output string) {
				if output != "" {
					t.Fatalf("expected info to be filtered, got %q", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Format: tt.format, Output: &buf})
			log.Info().Str("code", "1.1").Msg("hello")
			tt.assertions(t, buf.String())
		})
	}
}
