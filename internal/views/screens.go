package views

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/todod/internal/model"
)

const EmptyStatePlaceholder = "No tasks yet. Add one above!"

type TaskRow struct {
	Text      string
	Completed bool
	Selected  bool
}

type TaskListData struct {
	InputView   string
	Rows        []TaskRow
	ListFocused bool
}

type HelpPanelData struct {
	Bindings   []string
	HelpView   string
	CheatSheet string
}

var (
	doneStyle        = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	emptyStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	confirmStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffc107"))
	notificationBase = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#ffffff")).Bold(true)
)

var severityColors = map[model.Severity]lipgloss.Color{
	model.SeveritySuccess: lipgloss.Color("#28a745"),
	model.SeverityError:   lipgloss.Color("#dc3545"),
	model.SeverityWarning: lipgloss.Color("#ffc107"),
	model.SeverityInfo:    lipgloss.Color("#17a2b8"),
}

// SanitizeText strips escape sequences and control characters so task text
// always renders literally.
func SanitizeText(s string) string {
	stripped := ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, stripped)
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString("to-do:\n")
	b.WriteString(data.InputView + "\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(emptyStyle.Render(EmptyStatePlaceholder))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if data.ListFocused && row.Selected {
			cursor = cursorStyle.Render(">")
		}
		box := "[ ]"
		text := SanitizeText(row.Text)
		if row.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %2d. %s %s", cursor, i+1, box, text))
		if i < len(data.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func RenderStats(total, completed int) string {
	return fmt.Sprintf("Total: %d | Completed: %d", total, completed)
}

func RenderNotification(severity model.Severity, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	style := notificationBase.Background(severityColors[severity.OrInfo()])
	return style.Render(fmt.Sprintf("[%s] %s", strings.ToUpper(string(severity.OrInfo())), SanitizeText(text)))
}

func RenderConfirm(prompt string) string {
	if prompt == "" {
		return ""
	}
	return confirmStyle.Render(prompt + " (y/n)")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.CheatSheet != "" {
		b.WriteString("\n\n" + data.CheatSheet)
	}
	return b.String()
}
