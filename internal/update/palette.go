package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/commands"
	"github.com/sandeepkv93/todod/internal/export"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.taskInput.Blur()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	if m.Focus == FocusInput {
		m.taskInput.Focus()
	}
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := m.Palette.Input
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m, m.notify(err.Error(), model.SeverityError)
	}
	m.log.Debug("palette command", "type", cmd.Type)

	var out tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m, out = m.addTask(a.Text)
			return commands.Result{}, nil
		},
		Toggle: func(r commands.RowArgs) (commands.Result, error) {
			t, ok := m.taskAtRow(r.Row)
			if !ok {
				return commands.Result{}, rowError(r.Row)
			}
			m, out = m.toggleTask(t.ID)
			return commands.Result{}, nil
		},
		Delete: func(r commands.RowArgs) (commands.Result, error) {
			t, ok := m.taskAtRow(r.Row)
			if !ok {
				return commands.Result{}, rowError(r.Row)
			}
			m, out = m.deleteTask(t.ID)
			return commands.Result{}, nil
		},
		Clear: func(c commands.ClearArgs) (commands.Result, error) {
			if c.Scope == commands.ClearAll {
				m, out = m.requestClearAll()
			} else {
				m, out = m.clearCompleted()
			}
			return commands.Result{}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			items := m.Store.Tasks()
			if err := export.WriteFile(e.Path, e.Format, items); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.log.Info("tasks exported", "format", e.Format, "path", e.Path, "count", len(items))
			return commands.Result{Message: fmt.Sprintf("Exported %d task(s) to %s", len(items), e.Path)}, nil
		},
	})
	if err != nil {
		return m, m.notify(err.Error(), model.SeverityError)
	}
	// Store mutations notify on their own; other commands report through Message.
	if res.Message != "" {
		out = m.notify(res.Message, model.SeveritySuccess)
	}
	return m, out
}

func rowError(row int) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at row %d", row)}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
