package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitRespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := Init(&buf, "warn", true)
	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record leaked at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Fatalf("expected json record, got %q", out)
	}
}

func TestInitFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todod.log")
	l, err := InitFile(path, "info", false)
	if err != nil {
		t.Fatalf("init file: %v", err)
	}
	l.Info("first line")
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "first line") {
		t.Fatalf("expected record in file, got %q", raw)
	}
}

func TestInitFileEmptyPathDiscards(t *testing.T) {
	l, err := InitFile("  ", "debug", false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	l.Debug("nowhere")
	if Get() != l {
		t.Fatal("expected Get to return the installed logger")
	}
}
