package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

func sampleTasks() []model.Task {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: 1, Text: "Buy milk", CreatedAt: created},
		{ID: 2, Text: "Call, then \"email\"", Completed: true, CreatedAt: created},
	}
}

func TestRenderJSONMatchesPersistedShape(t *testing.T) {
	out, err := Render("JSON", sampleTasks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var back []model.Task
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("json output not loadable: %v", err)
	}
	if len(back) != 2 || back[1].Text != `Call, then "email"` || !back[1].Completed {
		t.Fatalf("unexpected decoded tasks: %#v", back)
	}

	empty, err := Render(FormatJSON, nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("empty json: %q err=%v", empty, err)
	}
}

func TestRenderCSVQuotesText(t *testing.T) {
	out, err := Render(FormatCSV, sampleTasks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d: %q", len(lines), out)
	}
	if lines[0] != "id,text,completed,created_at" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[2] != `2,"Call, then ""email""",true,2026-02-09T12:00:00.000Z` {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestRenderMarkdownChecklist(t *testing.T) {
	out, err := Render("markdown", sampleTasks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "- [ ] Buy milk") || !strings.Contains(s, `- [x] Call, then "email"`) {
		t.Fatalf("unexpected markdown: %q", s)
	}

	empty, _ := Render(FormatMarkdown, nil)
	if !strings.Contains(string(empty), "No tasks yet") {
		t.Fatalf("expected empty-state line, got %q", empty)
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	out, err := Render(FormatPDF, sampleTasks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", out[:min(len(out), 8)])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render("xlsx", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tasks.md")
	if err := WriteFile(path, FormatMarkdown, sampleTasks()); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "Buy milk") {
		t.Fatalf("unexpected file contents: %q", raw)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
