package update

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/todod/internal/logger"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/tasks"
)

type Focus string

const (
	FocusInput Focus = "input"
	FocusList  Focus = "list"
)

const (
	clearAllPrompt   = "Are you sure you want to delete all tasks?"
	noticeEventID    = "notification"
	noticeEventKind  = "notification"
	defaultNoticeTTL = 3 * time.Second
)

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

// Notification is the single message shown under the list. Seq identifies
// it so a late expiry for an older notification can be ignored.
type Notification struct {
	Seq      uint64
	Text     string
	Severity model.Severity
	At       time.Time
}

type ConfirmState struct {
	Active bool
	Prompt string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Store          *tasks.Store
	Focus          Focus
	Cursor         int
	Notice         *Notification
	Confirm        ConfirmState
	Palette        CommandPaletteState
	HelpVisible    bool
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Scheduler      *scheduler.Engine
	DesktopEnabled bool
	notifier       DesktopNotifier
	noticeTTL      time.Duration
	noticeSeq      uint64
	ctx            context.Context
	log            *slog.Logger
	now            func() time.Time

	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type AddTaskMsg struct {
	Text string
}

type ToggleTaskMsg struct {
	ID int64
}

type DeleteTaskMsg struct {
	ID int64
}

type ClearCompletedMsg struct{}

// ClearAllMsg asks for confirmation first, exactly like the C key.
type ClearAllMsg struct{}

type ConfirmMsg struct {
	Yes bool
}

type NotificationExpiredMsg struct {
	Seq uint64
}

type AppErrorMsg struct {
	Err error
}

type schedulerEventMsg struct {
	Event scheduler.Event
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	title := severityTitle(n.Severity)
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, n.Text).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Text), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func NewModel(store *tasks.Store) Model {
	m := Model{
		Store:     store,
		Focus:     FocusInput,
		notifier:  NoopDesktopNotifier{},
		noticeTTL: defaultNoticeTTL,
		ctx:       context.Background(),
		log:       logger.Get(),
		now:       time.Now,
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func NewModelWithConfig(store *tasks.Store, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(store)
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.NotificationDuration > 0 {
		m.noticeTTL = cfg.NotificationDuration
	}
	return m
}

// WithLogger returns a copy of m that logs controller events to l.
func (m Model) WithLogger(l *slog.Logger) Model {
	if l != nil {
		m.log = l
	}
	return m
}

// WithContext sets the context passed to every store call.
func (m Model) WithContext(ctx context.Context) Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "What needs to be done?"
	m.taskInput.Prompt = "> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48
	m.taskInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpModel.ShowAll = true

	m.helpViewport = viewport.New(60, 12)
}
