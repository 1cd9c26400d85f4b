package update

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/AsimRizwan/Med-Rem/internal/logging"
	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/reminders"
	"github.com/AsimRizwan/Med-Rem/internal/scheduler"
	"github.com/AsimRizwan/Med-Rem/internal/settings"
)

type View string

const (
	ViewHome     View = "Home"
	ViewSettings View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home     string
	Settings string
	Help     string
	Quit     string
}

type FormField int

const (
	FieldName FormField = iota
	FieldTime
)

type AddFormState struct {
	Active bool
	Name   string
	Time   string
	Focus  FormField
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Notice is a blocking message. While set, only dismissal keys are handled.
type Notice struct {
	Title string
	Body  string
}

type SettingsState struct {
	Current settings.Settings
	Cursor  int
	Dirty   bool
}

type Model struct {
	CurrentView View
	Tracker     *reminders.Tracker
	Form        AddFormState
	Cursor      int
	Settings    SettingsState
	Palette     CommandPaletteState
	Notice      *Notice
	HelpVisible bool
	Permission  bool
	// PermissionPending is set until the first permission answer arrives.
	PermissionPending bool
	LastFired   string
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	notifier     *notify.Scheduler
	engine       *scheduler.Engine
	deliverer    notify.Deliverer
	settingsPath string
	log          *logging.Logger

	nameInput     textinput.Model
	timeInput     textinput.Model
	commandInput  textinput.Model
	reminderTable table.Model
	helpModel     help.Model
	permSpinner   spinner.Model
}

// Deps wires the model to the rest of the application. Every field is
// optional.
type Deps struct {
	Tracker      *reminders.Tracker
	Notifier     *notify.Scheduler
	Engine       *scheduler.Engine
	Deliverer    notify.Deliverer
	Settings     *settings.Settings
	SettingsPath string
	Logger       *logging.Logger
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type PermissionResultMsg struct {
	Granted bool
	Err     error
}

type ReminderDueMsg struct {
	Event scheduler.Event
}

type DeliveryResultMsg struct {
	ID  string
	Err error
}

func NewModel(deps Deps) Model {
	tracker := deps.Tracker
	if tracker == nil {
		tracker = reminders.NewTracker(nil, nil, nil, deps.Logger)
	}
	current := settings.Default()
	if deps.Settings != nil {
		current = *deps.Settings
	}
	deliverer := deps.Deliverer
	if deliverer == nil {
		deliverer = notify.NoopDeliverer{}
	}

	m := Model{
		CurrentView:       ViewHome,
		Tracker:           tracker,
		Settings:          SettingsState{Current: current},
		PermissionPending: deps.Notifier != nil,
		notifier:          deps.Notifier,
		engine:            deps.Engine,
		deliverer:         deliverer,
		settingsPath:      deps.SettingsPath,
		log:               deps.Logger.With("tui"),
		Keys: GlobalKeyMap{
			Home:     "1",
			Settings: "2",
			Help:     "?",
			Quit:     "q",
		},
	}
	if m.notifier != nil {
		m.notifier.Apply(current)
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m Model) timeFormat() model.TimeFormat {
	if m.Settings.Current.TimeFormat.IsValid() {
		return m.Settings.Current.TimeFormat
	}
	return model.TimeFormat12Hour
}

func (m *Model) initBubbleComponents() {
	m.nameInput = textinput.New()
	m.nameInput.Prompt = "medicine> "
	m.nameInput.Placeholder = "Enter medicine name"
	m.nameInput.CharLimit = 128
	m.nameInput.Width = 40

	m.timeInput = textinput.New()
	m.timeInput.Prompt = "time>     "
	m.timeInput.Placeholder = "Select time (e.g. 08:00 AM)"
	m.timeInput.CharLimit = 16
	m.timeInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Medicine", Width: 22},
		{Title: "Time", Width: 9},
		{Title: "Status", Width: 9},
	}
	m.reminderTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.helpModel = help.New()
	m.permSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
}

func (m *Model) syncBubbleData() {
	list := m.Tracker.List()
	if m.Cursor >= len(list) {
		m.Cursor = len(list) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	format := m.timeFormat()
	rows := make([]table.Row, 0, len(list))
	for i, r := range list {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.MedicineName,
			r.Time.Format(format),
			string(r.Status()),
		})
	}
	m.reminderTable.SetRows(rows)
	if len(rows) > 0 {
		m.reminderTable.SetCursor(m.Cursor)
	}

	m.nameInput.SetValue(m.Form.Name)
	m.timeInput.SetValue(m.Form.Time)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Form.Active && m.Form.Focus == FieldName {
		m.nameInput.Focus()
		m.timeInput.Blur()
	} else if m.Form.Active && m.Form.Focus == FieldTime {
		m.timeInput.Focus()
		m.nameInput.Blur()
	} else {
		m.nameInput.Blur()
		m.timeInput.Blur()
	}
}
