package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.taskInput.Value()
		next, cmd := m.addTask(text)
		if strings.TrimSpace(text) != "" {
			next.taskInput.SetValue("")
		}
		return next, cmd
	case "tab", "esc":
		m.focusList()
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Cursor = clamp(m.Cursor+1, 0, m.Store.Len()-1)
	case "k", "up":
		m.Cursor = clamp(m.Cursor-1, 0, m.Store.Len()-1)
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		m.Cursor = clamp(m.Store.Len()-1, 0, m.Store.Len()-1)
	case " ", "x":
		if t, ok := m.selectedTask(); ok {
			return m.toggleTask(t.ID)
		}
	case "d", "delete":
		if t, ok := m.selectedTask(); ok {
			return m.deleteTask(t.ID)
		}
	case "c":
		return m.clearCompleted()
	case "C":
		return m.requestClearAll()
	case "i", "a", "tab":
		m.focusInput()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		return m.resolveConfirm(true)
	case "n", "esc":
		return m.resolveConfirm(false)
	}
	return m, nil
}

func (m *Model) focusInput() {
	m.Focus = FocusInput
	m.taskInput.Focus()
}

func (m *Model) focusList() {
	m.Focus = FocusList
	m.taskInput.Blur()
	m.Cursor = clamp(m.Cursor, 0, m.Store.Len()-1)
}

func (m Model) selectedTask() (model.Task, bool) {
	items := m.Store.Tasks()
	if len(items) == 0 || m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Cursor], true
}

// taskAtRow maps a 1-based row number from the palette to a task.
func (m Model) taskAtRow(row int) (model.Task, bool) {
	items := m.Store.Tasks()
	if row < 1 || row > len(items) {
		return model.Task{}, false
	}
	return items[row-1], true
}

func (m Model) addTask(text string) (Model, tea.Cmd) {
	task, err := m.Store.Add(m.ctx, text)
	if errors.Is(err, model.ErrEmptyText) {
		return m, m.notify("Please enter a task!", model.SeverityError)
	}
	if err != nil {
		return m, m.notifyWriteError(err)
	}
	m.log.Info("task added", "id", task.ID)
	return m, m.notify("Task added successfully!", model.SeveritySuccess)
}

func (m Model) toggleTask(id int64) (Model, tea.Cmd) {
	completed, found, err := m.Store.Toggle(m.ctx, id)
	if !found {
		return m, nil
	}
	if err != nil {
		return m, m.notifyWriteError(err)
	}
	if completed {
		return m, m.notify("Task completed!", model.SeverityInfo)
	}
	return m, m.notify("Task marked as incomplete!", model.SeverityInfo)
}

func (m Model) deleteTask(id int64) (Model, tea.Cmd) {
	removed, found, err := m.Store.Delete(m.ctx, id)
	if !found {
		return m, nil
	}
	m.Cursor = clamp(m.Cursor, 0, m.Store.Len()-1)
	if err != nil {
		return m, m.notifyWriteError(err)
	}
	m.log.Info("task deleted", "id", removed.ID)
	return m, m.notify(fmt.Sprintf("Task \"%s\" deleted!", removed.Text), model.SeverityWarning)
}

func (m Model) clearCompleted() (Model, tea.Cmd) {
	removed, err := m.Store.ClearCompleted(m.ctx)
	m.Cursor = clamp(m.Cursor, 0, m.Store.Len()-1)
	if err != nil {
		return m, m.notifyWriteError(err)
	}
	if removed == 0 {
		return m, m.notify("No completed tasks to clear!", model.SeverityInfo)
	}
	return m, m.notify(fmt.Sprintf("%d completed task(s) cleared!", removed), model.SeverityInfo)
}

func (m Model) requestClearAll() (Model, tea.Cmd) {
	if m.Store.Len() == 0 {
		return m, m.notify("No tasks to clear!", model.SeverityInfo)
	}
	m.Confirm = ConfirmState{Active: true, Prompt: clearAllPrompt}
	return m, nil
}

func (m Model) resolveConfirm(yes bool) (Model, tea.Cmd) {
	if !m.Confirm.Active {
		return m, nil
	}
	m.Confirm = ConfirmState{}
	if !yes {
		return m, nil
	}
	removed, err := m.Store.ClearAll(m.ctx)
	m.Cursor = 0
	if err != nil {
		return m, m.notifyWriteError(err)
	}
	m.log.Info("task list cleared", "count", removed)
	return m, m.notify(fmt.Sprintf("All %d task(s) cleared!", removed), model.SeverityWarning)
}

func (m Model) renderTaskList() string {
	items := m.Store.Tasks()
	rows := make([]views.TaskRow, 0, len(items))
	for i, t := range items {
		rows = append(rows, views.TaskRow{
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  i == m.Cursor,
		})
	}
	return views.RenderTaskList(views.TaskListData{
		InputView:   m.taskInput.View(),
		Rows:        rows,
		ListFocused: m.Focus == FocusList,
	})
}
