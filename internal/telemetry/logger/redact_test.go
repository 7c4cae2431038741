package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactSensitive(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"password", slog.String("password", "hunter2"), redactedValue},
		{"mixed case key", slog.String("AuthHeader", "Basic xyz"), redactedValue},
		{"empty sensitive value", slog.String("secret", ""), ""},
		{"plain key", slog.String("key", "user:1"), "user:1"},
		{"command", slog.String("command", "SET"), "SET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactSensitive(tt.attr)
			if got.Value.String() != tt.want {
				t.Errorf("redactSensitive(%s) = %q, want %q", tt.attr.Key, got.Value.String(), tt.want)
			}
		})
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	attr := slog.Group("client", slog.String("token", "abc"), slog.String("name", "cli"))
	got := redactSensitive(attr).Value.Group()

	if got[0].Value.String() != redactedValue {
		t.Errorf("client.token = %q, want redacted", got[0].Value.String())
	}
	if got[1].Value.String() != "cli" {
		t.Errorf("client.name = %q, want %q", got[1].Value.String(), "cli")
	}
}

func TestRedaction_EndToEnd(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	l.Info("login", "password", "hunter2")

	if strings.Contains(buf.String(), "hunter2") {
		t.Errorf("password leaked into log: %q", buf.String())
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := map[string]bool{
		"password":    true,
		"api_secret":  true,
		"credentials": true,
		"key":         false,
		"value_size":  false,
	}

	for key, want := range tests {
		if got := IsSensitiveKey(key); got != want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
