package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csams/chatmark/internal/markup"
	"pkt.systems/pslog"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "Display plain from args",
			args: []string{"render", "--format", "plain", "hello", "*world*"},
			want: "hello world\n",
		},
		{
			name: "Edit plain keeps markers",
			args: []string{"render", "--mode", "edit", "--format", "plain", "*a*"},
			want: "*a*\n",
		},
		{
			name:  "Reads stdin",
			stdin: "_hi_\n",
			args:  []string{"render", "-f", "plain"},
			want:  "hi\n",
		},
		{
			name: "ANSI to a buffer has no escapes",
			args: []string{"render", "~gone~ now"},
			want: "gone now\n",
		},
		{
			name: "HTML",
			args: []string{"render", "--format", "html", "*b*"},
			want: "<strong>b</strong>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderCommandJSON(t *testing.T) {
	got, err := execute(t, "", "render", "--mode", "edit", "--format", "json", "a *bc*")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc struct {
		Mode  string        `json:"mode"`
		Text  string        `json:"text"`
		Spans []markup.Span `json:"spans"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("Failed to parse output %q: %v", got, err)
	}
	if doc.Mode != "edit" || doc.Text != "a *bc*" {
		t.Errorf("Expected edit mode with markers kept, got %q %q", doc.Mode, doc.Text)
	}
	want := markup.Span{Kind: markup.Bold, Start: 3, End: 4}
	if len(doc.Spans) != 1 || doc.Spans[0] != want {
		t.Errorf("Expected %v, got %v", want, doc.Spans)
	}
}

func TestRenderCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"Bad mode", []string{"render", "--mode", "loud", "x"}, "unknown mode"},
		{"Bad format", []string{"render", "--format", "pdf", "x"}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatmark", "config.yaml")

	got, err := execute(t, "", "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "wrote "+path+"\n" {
		t.Errorf("Expected the written path, got %q", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file: %v", err)
	}

	if _, err := execute(t, "", "config", "init", "--path", path); err == nil {
		t.Error("Expected init to refuse overwriting without --force")
	}
	if _, err := execute(t, "", "config", "init", "--path", path, "--force"); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}

	got, err = execute(t, "", "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(got, "format_delay_ms: 220") {
		t.Errorf("Expected the default delay in %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(got) == "" {
		t.Error("Expected version output")
	}
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"Args win", "ignored", []string{"a", "b"}, "a b"},
		{"Stdin trailing newline", "x\n", nil, "x"},
		{"Stdin CRLF", "x\r\n", nil, "x"},
		{"Stdin keeps inner newlines", "x\ny\n", nil, "x\ny"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(strings.NewReader(tt.stdin), tt.args)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want pslog.Level
	}{
		{"trace", pslog.TraceLevel},
		{"DEBUG", pslog.DebugLevel},
		{"info", pslog.InfoLevel},
		{"warn", pslog.WarnLevel},
		{"error", pslog.ErrorLevel},
		{"", pslog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestOpenLogFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chatmark.log")
	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer f.Close()

	logger := newFileLogger(f, "info")
	logger.Info("hello")
	logger.Debug("hidden")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") || strings.Contains(string(data), "hidden") {
		t.Errorf("Expected only the info entry, got %q", data)
	}
}
