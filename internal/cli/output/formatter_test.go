package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) is not a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("NewFormatter(yaml) is not a YAMLFormatter")
	}
	if _, ok := NewFormatter("other").(*TextFormatter); !ok {
		t.Error("NewFormatter(other) should fall back to TextFormatter")
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"result", Result{Command: "GET", Response: "hello"}, "hello\n"},
		{"result pointer", &Result{Command: "SET", Response: "Ok."}, "Ok.\n"},
		{"result error", Result{Command: "GET", Error: "boom"}, "(error) boom\n"},
		{"multiline keeps trailing newline", Result{Response: "a: 1\nb: 2\n"}, "a: 1\nb: 2\n"},
		{"bytes", []byte("raw"), "raw\n"},
		{"nil", nil, ""},
		{"fields", map[string]string{"b": "2", "a": "1"}, "a:  1\nb:  2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TextFormatter{}).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := (&JSONFormatter{}).Format(&buf, Result{RequestID: "r1", Command: "GET", Response: "v"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "{\n  \"request_id\": \"r1\",\n  \"command\": \"GET\",\n  \"response\": \"v\"\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := (&YAMLFormatter{}).Format(&buf, Result{RequestID: "r1", Command: "SET", Error: "bad"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"request_id: r1\n", "command: SET\n", "error: bad\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "response:") {
		t.Errorf("Format() = %q, empty response should be omitted", got)
	}
}
