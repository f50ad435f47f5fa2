package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForSchedulerCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		m.helpViewport.Width = typed.Width - 4
		return m, nil
	case AddTaskMsg:
		return m.addTask(typed.Text)
	case ToggleTaskMsg:
		return m.toggleTask(typed.ID)
	case DeleteTaskMsg:
		return m.deleteTask(typed.ID)
	case ClearCompletedMsg:
		return m.clearCompleted()
	case ClearAllMsg:
		return m.requestClearAll()
	case ConfirmMsg:
		return m.resolveConfirm(typed.Yes)
	case NotificationExpiredMsg:
		m.expireNotice(typed.Seq)
		return m, nil
	case schedulerEventMsg:
		if typed.Event.Kind == noticeEventKind {
			m.expireNotice(typed.Event.Seq)
		}
		if m.Scheduler != nil {
			return m, waitForSchedulerCmd(m.Scheduler.C())
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.log.Error("application error", "error", typed.Err)
			return m, m.notify(typed.Err.Error(), model.SeverityError)
		}
		return m, nil
	}

	if m.Focus == FocusInput && !m.Palette.Active {
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Confirm.Active {
		return m.handleConfirmKey(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		return m.openPalette(), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m.handleListKey(msg)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	stats := m.Store.Stats()
	overlay := m.renderCommandPalette()
	if help := m.renderHelpIfVisible(); help != "" {
		if overlay != "" {
			overlay += "\n\n"
		}
		overlay += help
	}
	notice := m.renderNotificationView()
	if m.Confirm.Active {
		notice = views.RenderConfirm(m.Confirm.Prompt)
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("todod | %d pending", stats.Pending()),
		Body:         m.renderTaskList(),
		Stats:        views.RenderStats(stats.Total, stats.Completed),
		Notification: notice,
		Overlay:      overlay,
		Footer:       m.footer(),
	})
}

func (m Model) footer() string {
	if m.Focus == FocusInput {
		return "enter add | tab list | ctrl+c quit"
	}
	return fmt.Sprintf("j/k move | space toggle | d delete | c clear done | C clear all | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
}
