package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"
	"tripboard/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultIOTimeout = 15 * time.Second
	statusTick       = 20 * time.Second
)

// Config carries the settings of the board program.
type Config struct {
	TripName  string
	Logger    *slog.Logger
	PrefsPath string        // empty disables persisted preferences
	Timeout   time.Duration // per load or save
	Now       func() time.Time
}

// offlineReporter is implemented by catalogs that can fall back to a local
// snapshot.
type offlineReporter interface {
	Offline() (bool, time.Time)
}

type tickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	planner  *itinerary.Planner
	catalog  itinerary.Catalog
	logger   *slog.Logger
	tripName string
	timeout  time.Duration
	now      func() time.Time

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	loaded      bool
	offline     bool
	error       string
	info        string
	showingHelp bool

	board    *BoardModel
	detail   *LocationDetailModel
	dialog   *DialogModel
	carrying string // location id picked up in carry mode

	keys      KeyMap
	prefs     BoardPrefs
	prefsPath string
}

// New creates a new root model.
func New(planner *itinerary.Planner, catalog itinerary.Catalog, cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultIOTimeout
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		planner:   planner,
		catalog:   catalog,
		logger:    logger,
		tripName:  cfg.TripName,
		timeout:   timeout,
		now:       now,
		screen:    model.ScreenBoard,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		board:     NewBoardModel(),
		keys:      DefaultKeyMap(),
		prefs:     loadBoardPrefs(cfg.PrefsPath),
		prefsPath: cfg.PrefsPath,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadBoardCmd(m.planner, m.catalog, m.timeout), tickCmd())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}
		if msg.String() == "?" && m.mode == model.ModeNav {
			m.showingHelp = true
			return m, nil
		}

		switch m.mode {
		case model.ModeInsert:
			return m.updateDialog(msg)
		case model.ModeCarry:
			return m.handleCarryMode(msg)
		}
		if m.screen == model.ScreenLocationDetail {
			return m.handleDetailNav(msg)
		}
		return m.handleBoardNav(msg)

	case tickMsg:
		// re-render so "saved x ago" stays current
		return m, tickCmd()

	case model.BoardLoadedMsg:
		m.loaded = true
		m.offline = msg.Offline
		m.error = ""
		focus := ""
		if it, ok := m.board.Selected(); ok {
			focus = it.LocationID
		}
		m.refresh(focus)
		if msg.Offline {
			m.info = "Catalog unavailable, showing the last saved copy"
		}
		return m, nil

	case model.SaveResultMsg:
		switch {
		case msg.Superseded:
		case msg.Err != nil:
			m.error = fmt.Sprintf("Failed to save (%s): %v", msg.Label, msg.Err)
		default:
			if strings.HasPrefix(m.error, "Failed to save") {
				m.error = ""
			}
		}
		return m, nil

	case model.FormSubmittedMsg:
		return m.handleSubmit(msg.Value)

	case model.FormCancelledMsg:
		m.closeDialog()
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil
	}

	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	crumbs := []string{m.tripName}
	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	// header and footer take two lines each
	contentHeight := m.height - 4 - len(banners)

	var content string
	switch {
	case !m.loaded:
		content = EmptyStateStyle.Render("Loading itinerary...")
	case m.screen == model.ScreenLocationDetail && m.detail != nil:
		crumbs = append(crumbs, m.detail.location.Name)
		content = m.detail.View(m.width, contentHeight)
	default:
		content = m.boardView(contentHeight)
	}

	if m.dialog != nil {
		dialog := m.dialog.View(m.width)
		if m.screen == model.ScreenBoard {
			content = m.boardView(contentHeight - lipgloss.Height(dialog))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, dialog, content)
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{m.renderHeader(crumbs)}
	parts = append(parts, banners...)
	parts = append(parts, content, RenderHelp(m.screen, m.mode, m.width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) boardView(height int) string {
	return m.board.View(m.width, height, m.prefs.ColumnWidth, m.planner.Location, m.carrying, m.prefs.ShowDistances)
}

func (m Model) renderHeader(crumbs []string) string {
	title := HeaderStyle.Render("tripboard")

	var parts []string
	for i, part := range crumbs {
		if part == "" {
			continue
		}
		if i == len(crumbs)-1 {
			parts = append(parts, BreadcrumbActiveStyle.Render(part))
		} else {
			parts = append(parts, BreadcrumbStyle.Render(part))
		}
	}
	separator := BreadcrumbStyle.Render(" › ")
	left := "  " + title
	if len(parts) > 0 {
		left += separator + strings.Join(parts, separator)
	}

	right := m.statusText() + "  "

	// TitleStyle pads one cell on each side
	padding := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return TitleStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) statusText() string {
	st := m.planner.Status()
	var text string
	switch st.State {
	case itinerary.StatusSaving:
		text = SavingStyle.Render(fmt.Sprintf("saving (%d)", st.Pending))
	case itinerary.StatusError:
		text = ErrorStyle.Padding(0).Render("save failed")
	default:
		text = BreadcrumbStyle.Render("saved " + util.FormatLastSaved(st.LastSaved, m.now()))
	}
	if m.offline {
		text = SavingStyle.Render("offline catalog") + BreadcrumbStyle.Render(" · ") + text
	}
	return text
}

// handleBoardNav handles nav mode on the board.
func (m Model) handleBoardNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.loaded {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if handled := m.handleMotion(msg, false); handled {
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.board.Filter() != "" {
			m.board.SetFilter("", m.planner.Location)
			m.info = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.PickUp):
		if it, ok := m.board.Selected(); ok {
			m.carrying = it.LocationID
			m.mode = model.ModeCarry
			m.info = "Carrying " + m.name(it.LocationID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if it, ok := m.board.Selected(); ok {
			m.openDetail(it)
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp), key.Matches(msg, m.keys.MoveDown):
		it, ok := m.board.Selected()
		if !ok {
			return m, nil
		}
		idx := m.board.IndexInColumn(it.LocationID)
		if key.Matches(msg, m.keys.MoveUp) {
			idx--
		} else {
			idx++
		}
		if idx < 0 || idx >= m.board.ColumnLen() {
			return m, nil
		}
		return m, m.commit(m.planner.Reorder(it.LocationID, it.Day, idx), it.LocationID)

	case key.Matches(msg, m.keys.MoveLeft), key.Matches(msg, m.keys.MoveRight):
		it, ok := m.board.Selected()
		if !ok {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.MoveLeft) {
			delta = -1
		}
		next, ok := m.board.NeighborColumn(delta)
		if !ok {
			return m, nil
		}
		return m, m.commit(m.planner.Move(it.LocationID, next.ID), it.LocationID)

	case key.Matches(msg, m.keys.AddDay):
		m.openDialog(NewAddDayDialog(fmt.Sprintf("Day %d", len(m.planner.Containers()))))
		return m, nil

	case key.Matches(msg, m.keys.RenameDay):
		if c, ok := m.dayUnderCursor(); ok {
			m.openDialog(NewRenameDayDialog(c))
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteDay):
		if c, ok := m.dayUnderCursor(); ok {
			m.openDialog(NewDeleteDayDialog(c, m.board.ColumnLen()))
		}
		return m, nil

	case key.Matches(msg, m.keys.ShiftDayLeft), key.Matches(msg, m.keys.ShiftDayRight):
		c, ok := m.dayUnderCursor()
		if !ok {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.ShiftDayLeft) {
			delta = -1
		}
		save, err := m.planner.ShiftDay(c.ID, delta)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		cmd := m.commit(save, "")
		m.board.FocusColumn(c.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Note):
		if it, ok := m.board.Selected(); ok {
			if loc, ok := m.planner.Location(it.LocationID); ok {
				m.openDialog(NewNoteDialog(loc, it.Note))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.openDialog(NewFilterDialog(m.board.Filter()))
		return m, nil

	case key.Matches(msg, m.keys.Distances):
		m.prefs.ShowDistances = !m.prefs.ShowDistances
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloading..."
		return m, loadBoardCmd(m.planner, m.catalog, m.timeout)
	}

	return m, nil
}

// handleMotion moves the board cursor. It reports whether msg was a motion
// key.
func (m *Model) handleMotion(msg tea.KeyMsg, carrying bool) bool {
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateFirstG {
			m.board.Top(carrying)
			m.gState = GStateIdle
		} else {
			m.gState = GStateFirstG
		}
		return true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.board.Up(carrying)
	case key.Matches(msg, m.keys.Down):
		m.board.Down()
	case key.Matches(msg, m.keys.Left):
		m.board.Left()
	case key.Matches(msg, m.keys.Right):
		m.board.Right()
	case key.Matches(msg, m.keys.Bottom):
		m.board.Bottom()
	default:
		return false
	}
	m.gState = GStateIdle
	return true
}

// handleCarryMode moves a picked-up item around until it is dropped.
func (m Model) handleCarryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled := m.handleMotion(msg, true); handled {
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.PickUp), key.Matches(msg, m.keys.Open):
		active := m.carrying
		target := m.board.DropTarget()
		m.carrying = ""
		m.mode = model.ModeNav
		m.info = ""
		if target == "" || target == active {
			return m, nil
		}
		return m, m.commit(m.planner.Move(active, target), active)

	case key.Matches(msg, m.keys.Back):
		active := m.carrying
		m.carrying = ""
		m.mode = model.ModeNav
		m.info = ""
		m.refresh(active)
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Left):
		m.screen = model.ScreenBoard
		m.detail = nil
	case key.Matches(msg, m.keys.Note):
		if m.detail != nil {
			m.openDialog(NewNoteDialog(m.detail.location, m.detail.item.Note))
		}
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dialog == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	d, cmd := m.dialog.Update(msg)
	m.dialog = &d
	return m, cmd
}

func (m Model) handleSubmit(value string) (tea.Model, tea.Cmd) {
	d := m.dialog
	if d == nil {
		return m, nil
	}

	switch d.kind {
	case dialogAddDay:
		id, save, err := m.planner.AddDay(value)
		if err != nil {
			d.error = err.Error()
			return m, nil
		}
		m.closeDialog()
		cmd := m.commit(save, "")
		m.board.FocusColumn(id)
		return m, cmd

	case dialogRenameDay:
		save, err := m.planner.RenameDay(d.target, value)
		if err != nil {
			d.error = err.Error()
			return m, nil
		}
		m.closeDialog()
		cmd := m.commit(save, "")
		m.board.FocusColumn(strings.TrimSpace(value))
		return m, cmd

	case dialogDeleteDay:
		m.closeDialog()
		save, err := m.planner.RemoveDay(d.target)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		return m, m.commit(save, "")

	case dialogNote:
		save, err := m.planner.SetNote(d.target, value)
		if err != nil {
			d.error = err.Error()
			return m, nil
		}
		m.closeDialog()
		cmd := m.commit(save, d.target)
		if m.screen == model.ScreenLocationDetail {
			if it, ok := m.item(d.target); ok {
				m.openDetail(it)
			}
		}
		return m, cmd

	case dialogFilter:
		m.closeDialog()
		m.board.SetFilter(value, m.planner.Location)
		if value != "" {
			m.info = "Filter: " + value
		} else {
			m.info = ""
		}
		return m, nil
	}

	m.closeDialog()
	return m, nil
}

func (m *Model) openDialog(d *DialogModel) {
	m.dialog = d
	m.mode = model.ModeInsert
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.mode = model.ModeNav
}

// commit redraws the board from the planner and returns the command that
// persists save. A nil save means the edit changed nothing.
func (m *Model) commit(save *itinerary.Save, focusID string) tea.Cmd {
	m.refresh(focusID)
	if save == nil {
		return nil
	}
	return runSaveCmd(save, m.timeout)
}

func (m *Model) refresh(focusID string) {
	m.board.Refresh(m.planner.Columns(), m.planner.Location, focusID)
}

func (m *Model) dayUnderCursor() (model.Container, bool) {
	c, ok := m.board.Column()
	if !ok {
		return c, false
	}
	if c.IsUnscheduled() {
		m.info = model.Unscheduled + " can't be renamed, moved or deleted"
		return c, false
	}
	return c, true
}

func (m *Model) openDetail(it model.ItineraryItem) {
	loc, ok := m.planner.Location(it.LocationID)
	if !ok {
		return
	}
	var prev *model.Location
	if it.Day != model.Unscheduled {
		for _, col := range m.planner.Columns() {
			if col.Container.ID != it.Day {
				continue
			}
			for i, other := range col.Items {
				if other.LocationID == it.LocationID && i > 0 {
					if p, ok := m.planner.Location(col.Items[i-1].LocationID); ok {
						prev = &p
					}
				}
			}
		}
	}
	m.detail = NewLocationDetailModel(loc, it, prev)
	m.screen = model.ScreenLocationDetail
}

func (m Model) item(locationID string) (model.ItineraryItem, bool) {
	for _, it := range m.planner.Items() {
		if it.LocationID == locationID {
			return it, true
		}
	}
	return model.ItineraryItem{}, false
}

func (m Model) name(locationID string) string {
	if loc, ok := m.planner.Location(locationID); ok {
		return loc.Name
	}
	return locationID
}

func (m *Model) savePrefs() {
	if err := saveBoardPrefs(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save preferences", "err", err)
	}
}

func loadBoardCmd(p *itinerary.Planner, catalog itinerary.Catalog, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, done := context.WithTimeout(context.Background(), timeout)
		defer done()
		if err := p.Load(ctx, catalog); err != nil {
			return model.ErrorMsg{Err: err}
		}
		msg := model.BoardLoadedMsg{}
		if r, ok := catalog.(offlineReporter); ok {
			msg.Offline, _ = r.Offline()
		}
		return msg
	}
}

func runSaveCmd(save *itinerary.Save, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, done := context.WithTimeout(context.Background(), timeout)
		defer done()
		res := save.Run(ctx)
		return model.SaveResultMsg{
			Version:    res.Version,
			Label:      res.Label,
			Err:        res.Err,
			Superseded: res.Superseded,
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(statusTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
