// Package tui is a terminal front end for the record browser.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abiiranathan/recordroom/browser"
	"github.com/abiiranathan/recordroom/ui"
)

// FileViewer opens a file by id and describes the outcome.
type FileViewer interface {
	ViewFile(ctx context.Context, fileID int64) (string, error)
}

// updateMsg reports that the session has new state.
type updateMsg struct{}

type fileMsg struct {
	text string
	err  error
}

var columnWidths = map[ui.ColumnKey]int{
	ui.ColSlNo:     6,
	ui.ColDistrict: 14,
	ui.ColTaluk:    14,
	ui.ColHobli:    14,
	ui.ColVillage:  16,
	ui.ColOffice:   26,
	ui.ColFileNo:   24,
	ui.ColVolumeNo: 10,
	ui.ColSub:      28,
	ui.ColYear:     10,
	ui.ColCategory: 10,
	ui.ColAction:   8,
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	session *browser.Session
	files   FileViewer
	updates <-chan struct{}

	target    ui.Target
	table     table.Model
	search    textinput.Model
	searching bool
	status    string
	styles    styles
}

// New returns a model over session. Every value received on updates
// redraws the screen.
func New(ctx context.Context, session *browser.Session, files FileViewer, updates <-chan struct{}) Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithWidth(160),
	)

	si := textinput.New()
	si.Placeholder = "Search records..."
	si.CharLimit = 100
	si.Width = 40

	m := Model{
		ctx:     ctx,
		session: session,
		files:   files,
		updates: updates,
		target:  ui.TargetTaluk,
		table:   t,
		search:  si,
		styles:  defaultStyles(),
	}
	m.refresh()
	return m
}

func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return updateMsg{}
	}
}

func section(t ui.Target) ui.Section {
	if t == ui.TargetVillage {
		return ui.SectionVillage
	}
	return ui.SectionTaluk
}

func (m Model) Init() tea.Cmd {
	show := func() tea.Msg {
		m.session.Show(section(m.target))
		return nil
	}
	return tea.Batch(show, waitForUpdate(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(3, msg.Height-10))
		return m, nil

	case updateMsg:
		m.refresh()
		return m, waitForUpdate(m.updates)

	case fileMsg:
		if msg.err != nil {
			m.status = "View failed: " + msg.err.Error()
		} else {
			m.status = msg.text
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.session.Dispatch(m.target, ui.SearchChanged{Text: m.search.Value()})
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.session.Snapshot(m.target)
	state := m.session.State(m.target)

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.target == ui.TargetTaluk {
			m.target = ui.TargetVillage
		} else {
			m.target = ui.TargetTaluk
		}
		m.status = ""
		m.session.Show(section(m.target))
		m.search.SetValue(m.session.State(m.target).Search)
		m.refresh()
		return m, nil

	case "/":
		m.searching = true
		m.search.SetValue(state.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case "left", "pgup":
		if state.Page > 1 {
			m.session.Dispatch(m.target, ui.PageChanged{Page: state.Page - 1})
		}
		return m, nil

	case "right", "pgdown":
		if state.Page < view.Table.Pagination.Pages {
			m.session.Dispatch(m.target, ui.PageChanged{Page: state.Page + 1})
		}
		return m, nil

	case "s":
		if next, ok := (ui.Dropdown{Options: view.PageSizes}).Next(); ok {
			limit, _ := strconv.Atoi(next.Value)
			m.session.Dispatch(m.target, ui.PageSizeChanged{Limit: limit})
		}
		return m, nil

	case "r":
		m.status = ""
		m.session.Retry(m.target)
		return m, nil

	case "enter":
		return m, m.viewSelected(view)

	case "y", "o", "c", "d", "t", "h", "v":
		if e, ok := m.cycle(key, view); ok {
			m.session.Dispatch(m.target, e)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves the dropdown bound to key to its next option.
func (m Model) cycle(key string, view browser.View) (ui.Event, bool) {
	code := func(d ui.Dropdown) (int, bool) {
		next, ok := d.Next()
		if !ok {
			return 0, false
		}
		n, _ := strconv.Atoi(next.Value)
		return n, true
	}
	value := func(d ui.Dropdown) (string, bool) {
		next, ok := d.Next()
		return next.Value, ok
	}

	if m.target == ui.TargetTaluk {
		switch key {
		case "y":
			v, ok := value(view.Taluk.Year)
			return ui.YearChanged{Year: v}, ok
		case "o":
			v, ok := value(view.Taluk.Office)
			return ui.OfficeChanged{Office: v}, ok
		}
		return nil, false
	}

	d := view.Village
	switch key {
	case "y":
		v, ok := value(d.Year)
		return ui.YearChanged{Year: v}, ok
	case "c":
		v, ok := value(d.Category)
		return ui.CategoryChanged{Category: v}, ok
	case "d":
		n, ok := code(d.District)
		return ui.DistrictChanged{Code: n}, ok
	case "t":
		n, ok := code(d.Taluk)
		return ui.TalukChanged{Code: n}, ok
	case "h":
		n, ok := code(d.Hobli)
		return ui.HobliChanged{Code: n}, ok
	case "v":
		n, ok := code(d.Village)
		return ui.VillageChanged{Code: n}, ok
	}
	return nil, false
}

func (m Model) viewSelected(view browser.View) tea.Cmd {
	i := m.table.Cursor()
	if i < 0 || i >= len(view.Table.Rows) {
		return nil
	}

	var fileID int64
	for _, c := range view.Table.Rows[i] {
		if c.FileID != 0 {
			fileID = c.FileID
		}
	}
	if fileID == 0 || m.files == nil {
		return nil
	}

	ctx, files := m.ctx, m.files
	return func() tea.Msg {
		text, err := files.ViewFile(ctx, fileID)
		return fileMsg{text: text, err: err}
	}
}

// refresh copies the session snapshot into the table.
func (m *Model) refresh() {
	view := m.session.Snapshot(m.target)

	cols := make([]table.Column, len(view.Table.Columns))
	for i, c := range view.Table.Columns {
		cols[i] = table.Column{Title: c.Title, Width: columnWidths[c.Key]}
	}

	rows := make([]table.Row, 0, len(view.Table.Rows))
	for _, r := range view.Table.Rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c.Text
		}
		rows = append(rows, row)
	}

	// Rows are cleared first so they never outnumber the columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m Model) View() string {
	view := m.session.Snapshot(m.target)
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Record Room") + " ")
	for _, t := range []ui.Target{ui.TargetTaluk, ui.TargetVillage} {
		style := m.styles.Tab
		if t == m.target {
			style = m.styles.ActiveTab
		}
		sb.WriteString(style.Render(section(t).Title()))
	}
	sb.WriteString("\n\n")

	searchStyle := m.styles.Search
	if m.searching {
		searchStyle = m.styles.Focused
	}
	sb.WriteString(searchStyle.Render(m.search.View()) + "\n")
	sb.WriteString(m.styles.Filter.Render(m.filterLine(view)) + "\n\n")

	if view.Table.Error != "" {
		sb.WriteString(m.styles.Error.Render(view.Table.Error+" Press r to retry.") + "\n")
	}

	sb.WriteString(m.table.View() + "\n")

	switch {
	case view.Loading && len(view.Table.Rows) == 0:
		sb.WriteString(m.styles.Muted.Render("Loading...") + "\n")
	case view.Table.Empty():
		sb.WriteString(m.styles.Muted.Render("No records found") + "\n")
	}

	p := view.Table.Pagination
	summary := fmt.Sprintf("%s  Page %d of %d", view.Table.Summary(), p.Page, max(p.Pages, 1))
	if view.Loading {
		summary += "  (loading)"
	}
	sb.WriteString(m.styles.Muted.Render(summary) + "\n")

	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status) + "\n")
	}
	sb.WriteString(m.styles.Muted.Render(m.help()))
	return sb.String()
}

func (m Model) filterLine(view browser.View) string {
	var parts []string
	add := func(key string, d ui.Dropdown) {
		label := d.Current().Label
		if d.Disabled {
			label = "-"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", key, label))
	}

	if m.target == ui.TargetTaluk {
		add("y", view.Taluk.Year)
		add("o", view.Taluk.Office)
	} else {
		d := view.Village
		add("c", d.Category)
		add("d", d.District)
		add("t", d.Taluk)
		add("h", d.Hobli)
		add("v", d.Village)
		add("y", d.Year)
	}
	if len(view.PageSizes) > 0 {
		add("s", ui.Dropdown{Options: view.PageSizes})
	}
	return strings.Join(parts, "  ")
}

func (m Model) help() string {
	if m.searching {
		return "type to search • enter/esc: done"
	}
	return "tab: section • /: search • ←/→: page • enter: view file • r: retry • q: quit"
}
