package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todod/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const cheatSheet = `## Palette

| command | effect |
| --- | --- |
| ` + "`add <text>`" + ` | add a task |
| ` + "`toggle <n>`" + ` | toggle row n |
| ` + "`delete <n>`" + ` | delete row n |
| ` + "`clear completed`" + ` | drop finished tasks |
| ` + "`clear all`" + ` | empty the list (asks first) |
| ` + "`export <json|csv|md|pdf> <path>`" + ` | write the list to a file |
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.focusBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	vp := m.helpViewport
	vp.SetContent(views.RenderMarkdown(cheatSheet))
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		CheatSheet: vp.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "ctrl+c", Action: "quit"},
		{Key: m.Keys.Help, Action: "toggle help (list focus)"},
		{Key: m.Keys.Palette, Action: "command palette (list focus)"},
		{Key: m.Keys.Quit, Action: "quit (list focus)"},
	}
}

func (m Model) focusBindings() []KeyBinding {
	if m.Confirm.Active {
		return []KeyBinding{
			{Key: "y", Action: "confirm"},
			{Key: "n/esc", Action: "cancel"},
		}
	}
	switch m.Focus {
	case FocusInput:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "tab/esc", Action: "focus list"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space/x", Action: "toggle complete"},
			{Key: "d", Action: "delete task"},
			{Key: "c", Action: "clear completed"},
			{Key: "C", Action: "clear all"},
			{Key: "i/a/tab", Action: "focus input"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.globalBindings(), m.focusBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		keys := strings.Split(kb.Key, "/")
		out = append(out, key.NewBinding(key.WithKeys(keys...), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
