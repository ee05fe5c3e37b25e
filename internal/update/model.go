package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskboard/internal/flow"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/watch"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewTasks     View = "Tasks"
	ViewDetail    View = "Detail"
	ViewEditor    View = "Editor"
	ViewCreate    View = "Create"
	ViewSubtasks  View = "Subtasks"
	ViewMenu      View = "Categories"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Tasks     string
	Menu      string
	New       string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView View
	Tasks       []model.Task
	Filter      model.Category
	Cursor      int
	MenuCursor  int
	DashCursor  int
	SearchQuery string
	// DetailID is the task shown by the detail and editor screens. Missing is
	// set when it no longer resolves.
	DetailID      string
	Missing       bool
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Toast         string
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx     context.Context
	store   *store.Store
	watcher *watch.Watcher
	cfg     RuntimeConfig
	width   int

	flow         *flow.Flow
	createForm   form
	subtaskForm  form
	subtaskIndex int
	subtaskErrs  map[int]model.SubtaskErrors
	editForm     form
	returnView   View
	toastSeq     int

	searchInput    textinput.Model
	searchActive   bool
	commandInput   textinput.Model
	detailViewport viewport.Model
	helpModel      help.Model
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

// StoreChangedMsg reports that another process rewrote the task slot.
type StoreChangedMsg struct {
	Event watch.Event
}

type toastExpiredMsg struct {
	seq int
}

func NewModel(ctx context.Context, s *store.Store) Model {
	return NewModelWithConfig(ctx, s, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(ctx context.Context, s *store.Store, w *watch.Watcher, cfg RuntimeConfig) Model {
	def := DefaultRuntimeConfig()
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = def.RecentLimit
	}
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = def.PreviewLimit
	}
	if cfg.ToastTTL <= 0 {
		cfg.ToastTTL = def.ToastTTL
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		CurrentView: ViewDashboard,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Tasks:     "2",
			Menu:      "3",
			New:       "n",
			Help:      "?",
			Quit:      "q",
		},
		ctx:     ctx,
		store:   s,
		watcher: w,
		cfg:     cfg,
		width:   100,
	}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "press s to search"
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.detailViewport = viewport.New(80, 12)
	m.helpModel = help.New()
}

// reload re-reads the collection from the store and clamps cursors.
func (m *Model) reload() {
	if m.store == nil {
		m.Tasks = nil
		return
	}
	m.Tasks = m.store.List(m.ctx)
	m.Cursor = clamp(m.Cursor, len(m.visibleTasks()))
	m.DashCursor = clamp(m.DashCursor, len(m.dashboardRows()))
	if m.CurrentView == ViewDetail {
		m.openDetail(m.DetailID)
	}
}

func (m Model) today() string {
	return m.cfg.Now().Format(time.DateOnly)
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
