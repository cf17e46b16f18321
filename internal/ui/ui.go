// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-exoplanets/internal/anim"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/logging"
	"github.com/litescript/ls-exoplanets/internal/scene"
	"github.com/litescript/ls-exoplanets/internal/state"
)

// Screen is the top-level screen.
type Screen int

const (
	ScreenHero Screen = iota
	ScreenExplorer
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg advances the render loop one frame.
	AnimTickMsg time.Time

	// CatalogLoadedMsg carries the result of a catalog load.
	CatalogLoadedMsg struct {
		Records  []exo.Record
		Duration time.Duration
		Refresh  bool
		Err      error
	}
)

// Loader supplies the catalog. *exo.Catalog implements it.
type Loader interface {
	Load(ctx context.Context) ([]exo.Record, error)
	Refresh(ctx context.Context) ([]exo.Record, error)
}

// Options configures the explorer.
type Options struct {
	// Context bounds catalog loads; cancelling it aborts an in-flight fetch.
	Context context.Context

	FPS   int
	Stars int
	Limit int    // 0 places every record
	Seed  uint64 // 0 picks a random seed
}

// Header and footer heights around the content area.
const (
	headerLines = 2
	footerLines = 2
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx     context.Context
	catalog Loader
	state   *state.Manager
	logger  *logging.Logger
	rng     *rand.Rand
	fps     int
	limit   int

	// UI state
	screen    Screen
	width     int
	height    int
	ready     bool
	now       time.Time
	searching bool

	// Sub-models
	universe UniverseModel
	detail   DetailModel
	toast    ToastModel
	search   textinput.Model
	spinner  spinner.Model

	snapshot state.Snapshot
}

// New creates the root model and marks the catalog as loading; the load
// itself starts in Init.
func New(catalog Loader, stateMgr *state.Manager, logger *logging.Logger, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.FPS <= 0 {
		opts.FPS = anim.DefaultFPS
	}
	if logger == nil {
		logger = logging.Discard()
	}
	rng := NewRand(opts.Seed)

	ti := textinput.New()
	ti.Placeholder = "Search planets by name or KOI id..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	stars := anim.NewStarfield(opts.Stars, anim.DefaultBounds(), rng)
	stateMgr.SetLoading()

	return Model{
		ctx:      opts.Context,
		catalog:  catalog,
		state:    stateMgr,
		logger:   logger,
		rng:      rng,
		fps:      opts.FPS,
		limit:    opts.Limit,
		screen:   ScreenHero,
		universe: NewUniverseModel(stars, opts.FPS),
		detail:   NewDetailModel(),
		search:   ti,
		spinner:  sp,
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		animTickCmd(m.fps),
		m.spinner.Tick,
		loadCmd(m.ctx, m.catalog, false),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd(m.fps))
		m.now = time.Time(msg)
		m.universe = m.universe.Step()
		m.detail = m.detail.Step(m.universe.Elapsed(), anim.FrameInterval(m.fps).Seconds())
		m.toast = m.toast.Expire(m.now)

	case spinner.TickMsg:
		if m.snapshot.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case CatalogLoadedMsg:
		m.handleLoaded(msg)

	case tea.MouseMsg:
		if m.screen == ScreenExplorer && m.snapshot.Session.Mode == state.ModeUniverse &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if id, ok := m.universe.PickAt(msg.X, msg.Y-headerLines); ok {
				m.apply(state.Select{ID: id})
			}
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if _, ok := m.toast.Active(); ok {
			m.toast = m.toast.Dismiss()
		}
		return m.handleKey(msg)

	default:
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}

	if m.screen == ScreenHero {
		switch key {
		case "enter", " ":
			m.screen = ScreenExplorer
		case "R":
			return m, m.refresh()
		}
		return m, nil
	}

	switch key {
	case "/":
		m.searching = true
		m.search.SetValue("")
		m.resize()
		return m, m.search.Focus()
	case "r":
		m.randomize()
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "R":
		return m, m.refresh()
	case "enter":
		switch {
		case m.snapshot.Session.Mode == state.ModeDetailed:
		case m.snapshot.Session.HasSelection():
			m.apply(state.Expand{})
		case len(m.snapshot.Objects) > 0:
			m.apply(state.Select{ID: m.snapshot.Objects[0].ID})
		}
	case "esc", "backspace":
		switch {
		case m.snapshot.Session.Mode == state.ModeDetailed:
			m.apply(state.Back{})
		case m.snapshot.Session.HasSelection():
			m.apply(state.Close{})
		default:
			m.screen = ScreenHero
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endSearch()
		return m, nil
	case "enter":
		query := m.search.Value()
		m.endSearch()
		m.apply(state.Search{Query: query})
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) endSearch() {
	m.searching = false
	m.search.Blur()
	m.resize()
}

// apply runs an event through the state manager and syncs the views.
// Errors become toasts; the session is unchanged by a failed event.
func (m *Model) apply(ev state.Event) {
	prev := m.snapshot.Session
	if _, err := m.state.Apply(ev); err != nil {
		if state.IsUnknown(err) {
			m.logger.Warn("Event %T named an object outside the scene: %v", ev, err)
		} else {
			m.logger.Debug("Event %T rejected: %v", ev, err)
		}
		m.toast = m.toast.ShowError(err, m.clock())
		return
	}
	m.sync(prev)
}

// sync pulls a fresh snapshot and pushes selection changes to the views.
// The detail view re-derives its metrics whenever it is entered or its
// planet changes.
func (m *Model) sync(prev state.Session) {
	m.snapshot = m.state.Snapshot()
	s := m.snapshot.Session

	m.universe = m.universe.SetObjects(m.snapshot.Objects)
	m.universe = m.universe.SetSelection(s.Selected)

	if s.Mode == state.ModeDetailed && (prev.Mode != state.ModeDetailed || prev.Selected != s.Selected) {
		if o, r, ok := m.snapshot.Selected(); ok {
			m.detail = m.detail.Enter(o, r, exo.DeriveMetrics(r, m.rng))
		}
	}
	if s.Selected != "" && !prev.IsDiscovered(s.Selected) {
		m.logger.Info("Discovered %s (%d/%d)", s.Selected, s.DiscoveredCount(), len(m.snapshot.Objects))
	}
	m.resize()
}

func (m *Model) randomize() {
	objs := m.snapshot.Objects
	if len(objs) == 0 {
		m.toast = m.toast.Show("No planets loaded yet", ToastError, m.clock())
		return
	}
	i := m.rng.IntN(len(objs))
	if len(objs) > 1 && objs[i].ID == m.snapshot.Session.Selected {
		i = (i + 1 + m.rng.IntN(len(objs)-1)) % len(objs)
	}
	m.apply(state.Randomize{ID: objs[i].ID})
}

// cycle moves the selection by dir through the objects in scene order.
func (m *Model) cycle(dir int) {
	objs := m.snapshot.Objects
	n := len(objs)
	if n == 0 {
		return
	}
	i := scene.IndexOf(objs, m.snapshot.Session.Selected)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+dir)%n + n) % n
	}
	m.apply(state.Select{ID: objs[i].ID})
}

func (m *Model) refresh() tea.Cmd {
	if m.snapshot.Loading {
		return nil
	}
	m.state.SetLoading()
	m.snapshot = m.state.Snapshot()
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.catalog, true))
}

func (m *Model) handleLoaded(msg CatalogLoadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("Catalog load failed: %v", msg.Err)
		m.state.SetError(msg.Err)
		m.snapshot = m.state.Snapshot()
		m.toast = m.toast.ShowError(msg.Err, m.clock())
		return
	}

	prev := m.snapshot.Session
	limit := m.limit
	if limit <= 0 {
		limit = len(msg.Records)
	}
	objects := scene.Generate(msg.Records, limit, m.rng)
	m.state.SetScene(msg.Records, objects, msg.Duration)
	m.logger.Info("Placed %d of %s records in %v", len(objects),
		humanize.Comma(int64(len(msg.Records))), msg.Duration.Round(time.Millisecond))
	m.sync(prev)

	if msg.Refresh {
		m.toast = m.toast.Show(fmt.Sprintf("Catalog refreshed · %d planets", len(objects)), ToastInfo, m.clock())
	}
}

// clock returns the last tick time, or wall time before the first tick.
func (m Model) clock() time.Time {
	if m.now.IsZero() {
		return time.Now()
	}
	return m.now
}

func (m Model) contentHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// canvasWidth leaves room for the selection card when one is shown.
func (m Model) canvasWidth() int {
	if m.showOverlay() {
		return m.width - overlayWidth - 1
	}
	return m.width
}

func (m Model) showOverlay() bool {
	return m.snapshot.Session.HasSelection() &&
		m.snapshot.Session.Mode == state.ModeUniverse &&
		m.width >= overlayWidth+30
}

func (m *Model) resize() {
	m.universe = m.universe.SetSize(m.canvasWidth(), m.contentHeight())
	m.detail = m.detail.SetSize(m.width, m.contentHeight())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.screen == ScreenHero {
		return renderHero(m.universe, m.width, m.height, heroStatus{
			loading: m.snapshot.Loading,
			count:   len(m.snapshot.Objects),
			err:     m.snapshot.LastError,
			spinner: m.spinner.View(),
		})
	}

	var content string
	switch {
	case m.snapshot.Session.Mode == state.ModeDetailed:
		content = m.detail.View()
	case m.showOverlay():
		o, _, _ := m.snapshot.Selected()
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			m.universe.View(), " ", renderOverlay(o, m.contentHeight()))
	default:
		content = m.universe.View()
	}
	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "  "
	for i, r := range []rune("LS-EXOPLANETS") {
		title += fg(gradientColor(i, 0, 13, 1), string(r))
	}

	s := m.snapshot
	info := fmt.Sprintf("  %d planets · %d discovered", len(s.Objects), s.Session.DiscoveredCount())
	if !s.LastLoad.IsZero() {
		info += fmt.Sprintf(" · loaded %s (%s)", humanize.Time(s.LastLoad), s.LoadTime.Round(time.Millisecond))
	}
	mode := accentStyle.Render("  ▶ " + s.Session.Mode.String())
	return title + mutedStyle.Render(info) + mode + "\n"
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.searching:
		status = "  " + m.search.View()
	case m.toast.View() != "":
		status = "  " + m.toast.View()
	case m.snapshot.Loading:
		status = "  " + m.spinner.View() + dimStyle.Render(" refreshing catalog...")
	default:
		status = "  " + m.recentDiscovery()
	}

	var help string
	switch {
	case m.searching:
		help = "enter: search · esc: cancel"
	case m.snapshot.Session.Mode == state.ModeDetailed:
		help = "esc: back · tab/shift+tab: next/prev · r: random · q: quit"
	default:
		help = "/: search · r: random · tab: cycle · enter: explore · esc: close · R: refresh · q: quit"
	}
	return status + "\n  " + dimStyle.Render(help)
}

func (m Model) recentDiscovery() string {
	d := m.state.RecentDiscoveries(1)
	if len(d) == 0 {
		return dimStyle.Render("Select a planet to discover it")
	}
	last := d[0]
	return mutedStyle.Render(fmt.Sprintf("Last discovered: %s via %s", last.Name, last.Via))
}

func animTickCmd(fps int) tea.Cmd {
	return tea.Tick(anim.FrameInterval(fps), func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// loadCmd loads (or refreshes) the catalog off the update loop.
func loadCmd(ctx context.Context, catalog Loader, refresh bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		var recs []exo.Record
		var err error
		if refresh {
			recs, err = catalog.Refresh(ctx)
		} else {
			recs, err = catalog.Load(ctx)
		}
		return CatalogLoadedMsg{
			Records:  recs,
			Duration: time.Since(start),
			Refresh:  refresh,
			Err:      err,
		}
	}
}

// Screen returns the current screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Snapshot returns the state the model last rendered from.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

// NewRand returns the generator used for layout and derived metrics.
// A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
