package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/todod/internal/model"
)

func TestRenderTaskListEmptyPlaceholder(t *testing.T) {
	out := RenderTaskList(TaskListData{InputView: "add> "})
	if !strings.Contains(out, EmptyStatePlaceholder) {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestRenderTaskListRowsAndCursor(t *testing.T) {
	out := RenderTaskList(TaskListData{
		ListFocused: true,
		Rows: []TaskRow{
			{Text: "Buy milk"},
			{Text: "Walk dog", Completed: true, Selected: true},
		},
	})
	if !strings.Contains(out, " 1. [ ] Buy milk") {
		t.Fatalf("missing first row: %q", out)
	}
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "Walk dog") {
		t.Fatalf("missing completed row: %q", out)
	}
	if strings.Contains(out, EmptyStatePlaceholder) {
		t.Fatalf("placeholder must not render with rows: %q", out)
	}
	if !strings.Contains(out, ">") {
		t.Fatalf("expected cursor marker: %q", out)
	}
}

func TestSanitizeTextNeutralizesEscapes(t *testing.T) {
	cases := map[string]string{
		"\x1b[31mred\x1b[0m":        "red",
		"bell\a":                    "bell",
		"line\nbreak":               "line break",
		"\x1b]0;pwned\x07title":     "title",
		"<b>not markup</b> & stuff": "<b>not markup</b> & stuff",
	}
	for in, want := range cases {
		if got := SanitizeText(in); got != want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderStats(t *testing.T) {
	if got := RenderStats(3, 1); got != "Total: 3 | Completed: 1" {
		t.Fatalf("unexpected stats: %q", got)
	}
}

func TestRenderNotificationIncludesSeverity(t *testing.T) {
	out := RenderNotification(model.SeverityWarning, `Task "x" deleted!`)
	if !strings.Contains(out, "[WARNING]") || !strings.Contains(out, `Task "x" deleted!`) {
		t.Fatalf("unexpected notification: %q", out)
	}
	if RenderNotification(model.SeverityInfo, "  ") != "" {
		t.Fatal("blank notification should render nothing")
	}
	if !strings.Contains(RenderNotification(model.Severity("odd"), "hi"), "[INFO]") {
		t.Fatal("unknown severity should render as info")
	}
}

func TestRenderConfirm(t *testing.T) {
	if RenderConfirm("") != "" {
		t.Fatal("expected empty confirm when inactive")
	}
	if !strings.Contains(RenderConfirm("Are you sure?"), "Are you sure? (y/n)") {
		t.Fatal("expected prompt with y/n suffix")
	}
}

func TestRenderAppLayout(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "todod",
		Body:         "body",
		Stats:        RenderStats(0, 0),
		Notification: "note",
		Footer:       "keys",
	})
	for _, want := range []string{"todod", "body", "Total: 0", "note", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
