package update

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/views"
)

// notify replaces the visible notification and arranges for it to expire.
func (m *Model) notify(text string, sev model.Severity) tea.Cmd {
	m.noticeSeq++
	n := Notification{
		Seq:      m.noticeSeq,
		Text:     text,
		Severity: sev.OrInfo(),
		At:       m.now(),
	}
	m.Notice = &n
	m.log.Debug("notification", "seq", n.Seq, "severity", n.Severity, "text", n.Text)

	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Warn("desktop notification failed", "error", err)
		}
	}
	return m.scheduleDismiss(n)
}

func (m *Model) notifyWriteError(err error) tea.Cmd {
	m.LastError = err
	cause := errors.Unwrap(err)
	if cause == nil {
		cause = err
	}
	return m.notify("Could not save tasks: "+cause.Error(), model.SeverityError)
}

func (m *Model) scheduleDismiss(n Notification) tea.Cmd {
	ttl := m.noticeTTL
	if ttl <= 0 {
		ttl = defaultNoticeTTL
	}
	if m.Scheduler != nil {
		m.Scheduler.Cancel(noticeEventID)
		err := m.Scheduler.Schedule(scheduler.Event{
			ID:   noticeEventID,
			Kind: noticeEventKind,
			Seq:  n.Seq,
			At:   n.At.Add(ttl),
		})
		if err == nil {
			return nil
		}
		m.log.Warn("schedule notification expiry failed, falling back to tick", "error", err)
	}
	seq := n.Seq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Seq: seq}
	})
}

// expireNotice hides the notification only if seq is still the visible one.
func (m *Model) expireNotice(seq uint64) {
	if m.Notice != nil && m.Notice.Seq == seq {
		m.Notice = nil
	}
}

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return schedulerEventMsg{Event: ev}
	}
}

func (m Model) renderNotificationView() string {
	if m.Notice == nil {
		return ""
	}
	return views.RenderNotification(m.Notice.Severity, m.Notice.Text)
}
