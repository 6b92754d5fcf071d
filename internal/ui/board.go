package ui

import (
	"fmt"
	"strings"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"
	"tripboard/internal/util"

	"github.com/charmbracelet/lipgloss"
)

const headerRow = -1

// lookupFunc resolves a location id against the catalog.
type lookupFunc func(id string) (model.Location, bool)

// BoardModel is the column view of the itinerary. It holds a snapshot of the
// planner's columns and a cursor over the filtered view.
type BoardModel struct {
	columns []itinerary.Column
	visible [][]model.ItineraryItem
	filter  string

	col    int
	row    int // headerRow selects the column itself
	offset int // first rendered column
}

// NewBoardModel creates an empty board.
func NewBoardModel() *BoardModel {
	return &BoardModel{}
}

// Refresh replaces the snapshot. When focusID is set the cursor follows that
// location; otherwise it is clamped to the new shape.
func (b *BoardModel) Refresh(columns []itinerary.Column, lookup lookupFunc, focusID string) {
	b.columns = columns
	b.visible = make([][]model.ItineraryItem, len(columns))
	for i, c := range columns {
		b.visible[i] = itinerary.Filter(c.Items, lookup, b.filter)
	}
	if focusID != "" && b.focus(focusID) {
		return
	}
	b.clamp()
}

// SetFilter applies a name/city filter to every column.
func (b *BoardModel) SetFilter(query string, lookup lookupFunc) {
	b.filter = strings.TrimSpace(query)
	focus := ""
	if it, ok := b.Selected(); ok {
		focus = it.LocationID
	}
	b.Refresh(b.columns, lookup, focus)
}

// Filter returns the active filter.
func (b *BoardModel) Filter() string {
	return b.filter
}

func (b *BoardModel) focus(id string) bool {
	for c, items := range b.visible {
		for r, it := range items {
			if it.LocationID == id {
				b.col, b.row = c, r
				return true
			}
		}
	}
	return false
}

func (b *BoardModel) clamp() {
	if b.col >= len(b.columns) {
		b.col = len(b.columns) - 1
	}
	if b.col < 0 {
		b.col = 0
	}
	if n := b.visibleLen(b.col); b.row >= n {
		b.row = n - 1
	}
	if b.row < headerRow {
		b.row = headerRow
	}
}

func (b *BoardModel) visibleLen(col int) int {
	if col < 0 || col >= len(b.visible) {
		return 0
	}
	return len(b.visible[col])
}

// Up moves the cursor up. The column header is reachable when allowHeader is
// set, which carry mode uses as the "append to this day" target.
func (b *BoardModel) Up(allowHeader bool) {
	floor := 0
	if allowHeader || b.visibleLen(b.col) == 0 {
		floor = headerRow
	}
	if b.row > floor {
		b.row--
	}
}

// Down moves the cursor down.
func (b *BoardModel) Down() {
	if b.row < b.visibleLen(b.col)-1 {
		b.row++
	}
}

// Left moves to the previous column, keeping the row where possible.
func (b *BoardModel) Left() {
	if b.col > 0 {
		b.col--
		b.clampRow()
	}
}

// Right moves to the next column.
func (b *BoardModel) Right() {
	if b.col < len(b.columns)-1 {
		b.col++
		b.clampRow()
	}
}

// Top selects the first row, or the header in carry mode.
func (b *BoardModel) Top(allowHeader bool) {
	if allowHeader || b.visibleLen(b.col) == 0 {
		b.row = headerRow
		return
	}
	b.row = 0
}

// Bottom selects the last row.
func (b *BoardModel) Bottom() {
	b.row = b.visibleLen(b.col) - 1
}

// FocusColumn selects the header of the column with the given id.
func (b *BoardModel) FocusColumn(id string) {
	for i, c := range b.columns {
		if c.Container.ID == id {
			b.col = i
			b.clampRow()
			return
		}
	}
}

func (b *BoardModel) clampRow() {
	n := b.visibleLen(b.col)
	if b.row >= n {
		b.row = n - 1
	}
	if n > 0 && b.row < 0 {
		b.row = 0
	}
}

// Selected returns the item under the cursor.
func (b *BoardModel) Selected() (model.ItineraryItem, bool) {
	if b.row < 0 || b.row >= b.visibleLen(b.col) {
		return model.ItineraryItem{}, false
	}
	return b.visible[b.col][b.row], true
}

// Column returns the container under the cursor.
func (b *BoardModel) Column() (model.Container, bool) {
	if b.col < 0 || b.col >= len(b.columns) {
		return model.Container{}, false
	}
	return b.columns[b.col].Container, true
}

// ColumnLen returns the unfiltered item count of the column under the cursor.
func (b *BoardModel) ColumnLen() int {
	if b.col < 0 || b.col >= len(b.columns) {
		return 0
	}
	return b.columns[b.col].Len()
}

// NeighborColumn returns the container delta columns away from the cursor.
func (b *BoardModel) NeighborColumn(delta int) (model.Container, bool) {
	i := b.col + delta
	if i < 0 || i >= len(b.columns) {
		return model.Container{}, false
	}
	return b.columns[i].Container, true
}

// DropTarget returns the id a carried item is dropped on: the item under the
// cursor, or the column itself when the header or an empty column is
// selected.
func (b *BoardModel) DropTarget() string {
	if it, ok := b.Selected(); ok {
		return it.LocationID
	}
	if c, ok := b.Column(); ok {
		return c.ID
	}
	return ""
}

// IndexInColumn returns the position of id in the unfiltered column under
// the cursor.
func (b *BoardModel) IndexInColumn(id string) int {
	if b.col < 0 || b.col >= len(b.columns) {
		return -1
	}
	for i, it := range b.columns[b.col].Items {
		if it.LocationID == id {
			return i
		}
	}
	return -1
}

// View renders as many columns as fit, scrolled to keep the cursor visible.
func (b *BoardModel) View(width, height, colWidth int, lookup lookupFunc, carrying string, showDistances bool) string {
	if len(b.columns) == 0 {
		return EmptyStateStyle.Render("No days yet. Press 'a' to add one.")
	}

	outer := colWidth + 2
	perPage := width / outer
	if perPage < 1 {
		perPage = 1
	}
	if b.col < b.offset {
		b.offset = b.col
	}
	if b.col >= b.offset+perPage {
		b.offset = b.col - perPage + 1
	}

	var rendered []string
	for i := b.offset; i < len(b.columns) && i < b.offset+perPage; i++ {
		rendered = append(rendered, b.renderColumn(i, colWidth, height-2, lookup, carrying, showDistances))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var more []string
	if b.offset > 0 {
		more = append(more, fmt.Sprintf("‹ %d more", b.offset))
	}
	if rest := len(b.columns) - b.offset - perPage; rest > 0 {
		more = append(more, fmt.Sprintf("%d more ›", rest))
	}
	if len(more) > 0 {
		board = lipgloss.JoinVertical(lipgloss.Left, board, HelpDescStyle.Render(strings.Join(more, "   ")))
	}
	return board
}

func (b *BoardModel) renderColumn(i, colWidth, height int, lookup lookupFunc, carrying string, showDistances bool) string {
	c := b.columns[i]
	active := i == b.col
	items := b.visible[i]

	count := fmt.Sprintf("%d", c.Len())
	if len(items) != c.Len() {
		count = fmt.Sprintf("%d/%d", len(items), c.Len())
	}
	title := util.TruncateString(c.Container.Title, colWidth-len(count)-3)
	header := ColumnHeaderStyle.Width(colWidth).Render(title + " " + HelpDescStyle.Render(count))
	if active && b.row == headerRow {
		if carrying != "" {
			header = DropTargetStyle.Width(colWidth).Render("↓ " + title)
		} else {
			header = SelectedRowStyle.Width(colWidth).Render(title + " " + count)
		}
	}

	lines := []string{header}
	if len(items) == 0 {
		empty := "empty"
		if b.filter != "" && c.Len() > 0 {
			empty = "no matches"
		}
		lines = append(lines, EmptyStateStyle.Render(empty))
	}

	// Each card takes two lines; scroll so the cursor row stays visible.
	capacity := (height - 1) / 2
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if active && b.row >= capacity {
		start = b.row - capacity + 1
	}

	var prev *model.Location
	for r, it := range items {
		loc, ok := lookup(it.LocationID)
		if r < start || r >= start+capacity {
			if ok {
				l := loc
				prev = &l
			}
			continue
		}
		name := it.LocationID
		detail := ""
		if ok {
			name = loc.Name
			detail = loc.City
			if showDistances && prev != nil && prev.HasCoordinates() && loc.HasCoordinates() {
				km := util.HaversineKm(*prev.Lat, *prev.Lng, *loc.Lat, *loc.Lng)
				detail = strings.TrimSpace(detail + " · +" + util.FormatDistance(km))
			}
			l := loc
			prev = &l
		}
		if it.Note != "" {
			detail = strings.TrimSpace(detail + " ✎")
		}

		first := util.TruncateString(fmt.Sprintf("%d. %s", r+1, name), colWidth-2)
		second := util.TruncateString("   "+detail, colWidth-2)

		style := NormalRowStyle
		switch {
		case it.LocationID == carrying:
			style = CarriedRowStyle
			first = util.TruncateString("» "+name, colWidth-2)
		case active && r == b.row && carrying != "":
			style = DropTargetStyle
		case active && r == b.row:
			style = SelectedRowStyle
		}
		lines = append(lines,
			style.Width(colWidth).Render(first),
			HelpDescStyle.Width(colWidth).Render(second))
	}
	if len(items) > start+capacity {
		lines = append(lines, HelpDescStyle.Render(fmt.Sprintf("  +%d more", len(items)-start-capacity)))
	}

	style := ColumnStyle
	if active {
		style = ActiveColumnStyle
	}
	return style.Width(colWidth).Height(height).Render(strings.Join(lines, "\n"))
}
