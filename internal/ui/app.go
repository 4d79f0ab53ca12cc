package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
	"github.com/stanza-tui/stanza/internal/edit"
	"github.com/stanza-tui/stanza/internal/prefs"
	"github.com/stanza-tui/stanza/internal/scroll"
	"github.com/stanza-tui/stanza/internal/viewsync"
)

// Screen represents the surface currently on screen.
type Screen int

const (
	ScreenGlobal Screen = iota
	ScreenGenre
	ScreenLeaderboard
	ScreenMine
	ScreenLiked
	ScreenDetail
	ScreenEdit
)

// feedScreens cycle with tab, in this order.
var feedScreens = []Screen{ScreenGlobal, ScreenGenre, ScreenLeaderboard, ScreenMine, ScreenLiked}

// screenView maps a screen to the cache view backing it. Detail and edit
// have no feed backing of their own.
func screenView(s Screen) (cache.View, bool) {
	switch s {
	case ScreenGlobal:
		return cache.ViewGlobal, true
	case ScreenGenre:
		return cache.ViewGenre, true
	case ScreenLeaderboard:
		return cache.ViewLeaderboard, true
	case ScreenMine:
		return cache.ViewMine, true
	case ScreenLiked:
		return cache.ViewLiked, true
	}
	return 0, false
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Registry  *cache.Registry
	Logger    *zap.Logger
	UserID    string
	UserName  string
	Admin     bool
	PageSize  int
	ThemeName string
	PrefsPath string
	// Genre and StartView restore the previous session's genre filter and
	// active view (prefs), when set.
	Genre     string
	StartView string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *api.Client
	reg       *cache.Registry
	sync      *viewsync.Synchronizer
	log       *zap.Logger
	userID    string
	userName  string
	admin     bool
	pageSize  int
	prefsPath string

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	screen     Screen
	prevScreen Screen
	showHelp   bool

	// Feed state
	selected  map[cache.View]int
	scrollers map[cache.View]*scroll.Controller
	genreIdx  int

	// Queues filled by callbacks during an update pass and drained into
	// commands before the pass returns.
	refetches *viewQueue
	loadMores *viewQueue

	// Detail state
	detailID string

	// Edit state
	session *edit.Session
	editor  editorState

	// Pending delete confirmation (poem id, empty when none)
	confirmDeleteID string

	// Toasts
	toasts   []toast
	toastSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = cache.NewRegistry()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	refetches := &viewQueue{}
	sync := viewsync.New(viewsync.Options{
		Registry: reg,
		UserID:   opts.UserID,
		Admin:    opts.Admin,
		Refetch:  refetches.push,
		Logger:   log,
	})

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		reg:       reg,
		sync:      sync,
		log:       log,
		userID:    opts.UserID,
		userName:  opts.UserName,
		admin:     opts.Admin,
		pageSize:  pageSize,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		screen:    ScreenGlobal,
		selected:  make(map[cache.View]int),
		scrollers: make(map[cache.View]*scroll.Controller),
		refetches: refetches,
		loadMores: &viewQueue{},
		session:   &edit.Session{},
	}
	for _, v := range cache.FeedViews() {
		view := v
		m.scrollers[view] = scroll.New(reg.Get(view), func() { m.loadMores.push(view) })
	}

	if api.ValidGenre(opts.Genre) {
		reg.SetGenre(opts.Genre)
		for i, g := range genreFilters() {
			if g == opts.Genre {
				m.genreIdx = i
			}
		}
	}
	m.screen = screenForView(opts.StartView)
	return m
}

// screenForView maps a persisted view name back to its screen. Unknown
// names, including the never-restored detail view, open the global feed.
func screenForView(name string) Screen {
	for _, s := range feedScreens {
		if v, ok := screenView(s); ok && v.String() == name {
			return s
		}
	}
	return ScreenGlobal
}

// savePrefs snapshots the restorable session state. Failures are ignored;
// preferences are a convenience.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	screen := m.screen
	if _, ok := screenView(screen); !ok {
		screen = m.prevScreen
	}
	name := cache.ViewGlobal.String()
	if v, ok := screenView(screen); ok {
		name = v.String()
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme: m.theme.Name,
		Genre: m.reg.Genre(),
		View:  name,
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	v, ok := screenView(m.screen)
	if !ok {
		v = cache.ViewGlobal
	}
	return m.fetchList(v, 1)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.screen == ScreenEdit {
			m.editor.resize(msg.Width)
		}
		return m, nil

	case listResultMsg:
		return m.handleListResult(msg)

	case poemResultMsg:
		return m.handlePoemResult(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case mutationErrMsg:
		m.log.Warn("mutation rejected",
			zap.String("poem", msg.id),
			zap.Error(msg.err))
		cmd := m.pushToast(toastError, mutationErrText(msg.kind, msg.err))
		return m, cmd

	case toastExpiredMsg:
		m.expireToast(msg.seq)
		return m, nil
	}

	return m, nil
}

func (m Model) handleListResult(msg listResultMsg) (tea.Model, tea.Cmd) {
	c := m.reg.Get(msg.view)
	if msg.err != nil {
		c.Rejected(msg.ticket, msg.err)
		m.log.Warn("fetch rejected",
			zap.String("view", msg.view.String()),
			zap.Error(msg.err))
		cmd := m.pushToast(toastError, "Could not load "+msg.view.String()+" view")
		return m, cmd
	}
	c.Fulfill(msg.ticket, msg.resp.Poems, cache.PageInfo{
		Page:       msg.resp.Page,
		Limit:      msg.resp.Limit,
		Total:      msg.resp.Total,
		TotalPages: msg.resp.TotalPages,
		HasMore:    msg.resp.HasMore,
	})
	m.clampSelection(msg.view)
	m.observeSentinel(msg.view)
	return m, m.drainQueues()
}

func (m Model) handlePoemResult(msg poemResultMsg) (tea.Model, tea.Cmd) {
	c := m.reg.Get(cache.ViewDetail)
	if msg.err != nil {
		c.Rejected(msg.ticket, msg.err)
		cmd := m.pushToast(toastError, "Could not load poem")
		return m, cmd
	}
	var poems []api.Poem
	if msg.poem != nil {
		poems = []api.Poem{*msg.poem}
	}
	c.Fulfill(msg.ticket, poems, cache.PageInfo{Page: 1, TotalPages: 1})
	return m, nil
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.kind {
	case mutLike:
		if msg.poem == nil {
			break
		}
		if msg.poem.LikedBy(m.userID) {
			m.sync.Liked(*msg.poem)
		} else {
			m.sync.Unliked(*msg.poem)
			m.clampSelection(cache.ViewLiked)
		}

	case mutDelete:
		detailCleared := m.sync.Deleted(msg.id)
		for _, v := range cache.FeedViews() {
			m.clampSelection(v)
		}
		if m.session.TargetID == msg.id {
			m.session.Clear()
			if m.screen == ScreenEdit {
				m.screen = m.prevScreen
			}
		}
		if detailCleared && m.screen == ScreenDetail {
			m.screen = m.prevScreen
		}
		cmds = append(cmds, m.pushToast(toastSuccess, "Poem deleted"))

	case mutCreate:
		if msg.poem != nil {
			m.sync.Created(*msg.poem)
		}
		m.session.Clear()
		if m.screen == ScreenEdit {
			m.screen = m.prevScreen
		}
		cmds = append(cmds, m.pushToast(toastSuccess, "Poem published"))

	case mutSave:
		if msg.poem != nil {
			m.sync.Saved(*msg.poem)
		}
		m.session.Clear()
		if m.screen == ScreenEdit {
			m.screen = m.prevScreen
		}
		cmds = append(cmds, m.pushToast(toastSuccess, "Poem saved"))
	}

	if cmd := m.drainQueues(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// drainQueues converts queued refetches and load-mores into fetch commands.
// Refetches restart a view from page 1; load-mores continue from the
// current cursor.
func (m *Model) drainQueues() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range m.refetches.drain() {
		c := m.reg.Get(v)
		switch c.Status() {
		case cache.StatusIdle:
			// Never-fetched views stay empty until their screen asks.
			continue
		case cache.StatusFetching:
			// Invalidate the in-flight ticket; its response predates the
			// mutation. Ready caches skip this so the held items stay on
			// screen until the page-1 fulfillment replaces them wholesale.
			c.Reset()
		}
		if cmd := m.fetchList(v, 1); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, v := range m.loadMores.drain() {
		if cmd := m.fetchList(v, m.reg.Get(v).Page()+1); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// A pending delete confirmation swallows the next key.
	if m.confirmDeleteID != "" {
		id := m.confirmDeleteID
		m.confirmDeleteID = ""
		if msg.String() == "y" {
			return m, m.deleteCmd(id)
		}
		return m, nil
	}

	if m.screen == ScreenEdit {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchScreen(m.nextFeedScreen(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchScreen(m.nextFeedScreen(-1))

	case key.Matches(msg, m.keys.ViewGlobal):
		return m.switchScreen(ScreenGlobal)
	case key.Matches(msg, m.keys.ViewGenre):
		return m.switchScreen(ScreenGenre)
	case key.Matches(msg, m.keys.ViewLeaderboard):
		return m.switchScreen(ScreenLeaderboard)
	case key.Matches(msg, m.keys.ViewMine):
		return m.switchScreen(ScreenMine)
	case key.Matches(msg, m.keys.ViewLiked):
		return m.switchScreen(ScreenLiked)

	case key.Matches(msg, m.keys.New):
		m.session.Resolve("", nil, m.reg)
		m.openEditor()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.screen == ScreenDetail {
			m.reg.Get(cache.ViewDetail).Reset()
			m.detailID = ""
			m.screen = m.prevScreen
			return m, nil
		}
		return m.switchScreen(ScreenGlobal)
	}

	if m.screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleFeedKey(msg)
}

// switchScreen activates a screen, issuing the first fetch for views that
// have never loaded.
func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	v, ok := screenView(s)
	if !ok {
		return m, nil
	}
	if m.reg.Get(v).Status() == cache.StatusIdle {
		return m, m.fetchList(v, 1)
	}
	return m, nil
}

func (m *Model) nextFeedScreen(dir int) Screen {
	cur := 0
	for i, s := range feedScreens {
		if s == m.screen {
			cur = i
			break
		}
	}
	next := (cur + dir + len(feedScreens)) % len(feedScreens)
	return feedScreens[next]
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenLeaderboard:
		return m.renderLeaderboard()
	case ScreenDetail:
		return m.renderDetail()
	case ScreenEdit:
		return m.renderEditor()
	default:
		return m.renderFeed()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
