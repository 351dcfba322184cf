package model

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/taigrr/picklist/internal/ui/common"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/list"
	"github.com/taigrr/picklist/internal/ui/picklist"
	"github.com/taigrr/picklist/internal/ui/termhost"
	"github.com/taigrr/picklist/internal/uiutil"
)

const (
	wheelStep = 3
	// chromeRows is the header, status line and one help row.
	chromeRows = 3
)

// UI is the main picklist demo model.
type UI struct {
	com *common.Common

	keyMap KeyMap
	help   help.Model

	host *termhost.Host
	list *list.List
	pick *picklist.PickList

	entries []*Entry
	axis    layout.Axis
	sorted  bool

	// event describes the last pick or unpick for the status line.
	event string
	// info is the transient status message, if any.
	info *uiutil.StatusMsg

	width, height int
	layout        uiLayout
}

// uiLayout holds the screen areas of the UI.
type uiLayout struct {
	area   uv.Rectangle
	header uv.Rectangle
	main   uv.Rectangle
	status uv.Rectangle
	help   uv.Rectangle
}

// New creates the demo model over entries.
func New(com *common.Common, entries []*Entry) (*UI, error) {
	cfg := com.Config

	h := termhost.New()
	h.Register(cfg.Template.Path, cfg.Template.Width, cfg.Template.Height)

	l := list.New(h, h,
		list.WithAxis(cfg.LayoutAxis()),
		list.WithSpacing(cfg.Spacing.X, cfg.Spacing.Y),
		list.WithPadding(cfg.Padding.Left, cfg.Padding.Right, cfg.Padding.Top, cfg.Padding.Bottom),
	)

	ui := &UI{
		com:     com,
		keyMap:  DefaultKeyMap(),
		help:    help.New(),
		host:    h,
		list:    l,
		entries: entries,
		axis:    cfg.LayoutAxis(),
	}
	ui.help.Styles = com.Styles.Help

	ui.pick = picklist.New(l, ui.newItem,
		picklist.WithPickProperty(cfg.PickOptions()),
		picklist.WithConstraint(cfg.Constraint),
		picklist.WithComparison(BySize),
		picklist.WithOnPick(ui.onPick),
		picklist.WithOnUnPick(ui.onUnPick),
	)
	if err := ui.pick.SetTemplate(cfg.Template.Path); err != nil {
		return nil, fmt.Errorf("failed to set cell template: %w", err)
	}
	if err := ui.pick.SetDataSet(DataSet(entries), picklist.DataSetOptions{Refresh: true}); err != nil {
		return nil, fmt.Errorf("failed to show entries: %w", err)
	}
	return ui, nil
}

func (m *UI) newItem(h host.Handle) picklist.Item {
	return &cellItem{
		handle:  h,
		host:    m.host,
		sty:     &m.com.Styles,
		width:   m.com.Config.Template.Width,
		current: m.isCurrent,
	}
}

func (m *UI) isCurrent(e *Entry) bool {
	cur := m.pick.Current()
	return cur != nil && cur == picklist.Data(e)
}

func (m *UI) onPick(d picklist.Data, isRepeat bool) bool {
	e := d.(*Entry)
	slog.Debug("Entry picked", "index", d.Index(), "name", e.Name, "repeat", isRepeat)
	m.event = "picked " + e.Name
	return true
}

func (m *UI) onUnPick(d picklist.Data, isRepeat bool) bool {
	e := d.(*Entry)
	slog.Debug("Entry unpicked", "index", d.Index(), "name", e.Name, "repeat", isRepeat)
	m.event = "unpicked " + e.Name
	return true
}

// Init initializes the UI model.
func (m *UI) Init() tea.Cmd {
	return nil
}

// Update handles updates to the UI model.
func (m *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.updateLayoutAndSize()
	case tea.MouseClickMsg:
		x, y := msg.X-m.layout.main.Min.X, msg.Y-m.layout.main.Min.Y
		if h, ok := m.host.HitTest(x, y); ok && m.pick.PickHandle(h) {
			m.pick.RefreshDisplay()
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp, tea.MouseWheelLeft:
			m.scrollBy(-wheelStep)
		case tea.MouseWheelDown, tea.MouseWheelRight:
			m.scrollBy(wheelStep)
		}
	case tea.KeyPressMsg:
		return m, m.handleKeyPressMsg(msg)
	case uiutil.StatusMsg:
		m.info = &msg
		return m, uiutil.ClearAfter(msg)
	case uiutil.ClearStatusMsg:
		m.info = nil
	}
	return m, nil
}

func (m *UI) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	k := &m.keyMap
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayoutAndSize()
	case key.Matches(msg, k.Up):
		m.scrollBy(-1)
	case key.Matches(msg, k.Down):
		m.scrollBy(1)
	case key.Matches(msg, k.PageUp):
		m.scrollBy(-m.page())
	case key.Matches(msg, k.PageDown):
		m.scrollBy(m.page())
	case key.Matches(msg, k.Next):
		m.pick.Next()
		m.pick.RefreshDisplay()
	case key.Matches(msg, k.Prev):
		m.pick.Prev()
		m.pick.RefreshDisplay()
	case key.Matches(msg, k.Pick):
		m.pickFocused()
	case key.Matches(msg, k.PickAll):
		if !m.pick.PickProperty().MultiPickable {
			return uiutil.ReportWarn("pick all needs multi mode")
		}
		m.pick.PickAll()
	case key.Matches(msg, k.UnpickAll):
		m.pick.UnpickAll()
		m.pick.RefreshDisplay()
	case key.Matches(msg, k.Sort):
		if err := m.toggleSort(); err != nil {
			return uiutil.ReportError(fmt.Errorf("failed to sort entries: %w", err))
		}
		if m.sorted {
			return uiutil.ReportInfo("sorted by size")
		}
		return uiutil.ReportInfo("generation order")
	}
	return nil
}

// pickFocused re-picks the current entry, or the first live entry when
// nothing is current.
func (m *UI) pickFocused() {
	if cur := m.pick.Current(); cur != nil {
		m.pick.OnPick(cur)
	} else {
		for i := range m.list.Live() {
			if d, ok := m.pick.GetPickData(i); ok {
				m.pick.OnPick(d)
			}
			break
		}
	}
	m.pick.RefreshDisplay()
}

// toggleSort switches between size order and generation order, keeping the
// selection and scrolling the current entry back into view.
func (m *UI) toggleSort() error {
	m.sorted = !m.sorted
	opts := picklist.DataSetOptions{Sort: m.sorted, Refresh: true, KeepPick: true}
	if err := m.pick.SetDataSet(DataSet(m.entries), opts); err != nil {
		return err
	}
	m.pick.JumpTo(m.pick.Current())
	if m.sorted {
		m.keyMap.Sort.SetHelp("s", "unsort")
	} else {
		m.keyMap.Sort.SetHelp("s", "sort by size")
	}
	return nil
}

func (m *UI) scrollBy(delta float64) {
	if m.host.ScrollBy(m.axis, delta) {
		m.list.HandleScroll()
	}
}

func (m *UI) page() float64 {
	if m.axis == layout.Horizontal {
		return float64(max(1, m.layout.main.Dx()))
	}
	return float64(max(1, m.layout.main.Dy()))
}

// updateLayoutAndSize recomputes the screen areas and resizes the host
// viewport to the main area.
func (m *UI) updateLayoutAndSize() {
	m.layout = m.generateLayout(m.width, m.height)
	m.host.SetViewport(m.layout.main.Dx(), m.layout.main.Dy())
	if err := m.list.Relayout(); err != nil {
		slog.Error("Failed to relayout list", "error", err)
	}
}

func (m *UI) generateLayout(w, h int) uiLayout {
	area := uv.Rect(0, 0, w, h)
	helpHeight := 1
	if m.help.ShowAll {
		for _, row := range m.keyMap.FullHelp() {
			helpHeight = max(helpHeight, len(row))
		}
	}
	mainHeight := max(0, h-helpHeight-2)
	return uiLayout{
		area:   area,
		header: uv.Rect(0, 0, w, 1),
		main:   uv.Rect(0, 1, w, mainHeight),
		status: uv.Rect(0, 1+mainHeight, w, 1),
		help:   uv.Rect(0, 2+mainHeight, w, helpHeight),
	}
}

// Draw implements [tea.Layer] and draws the UI model.
func (m *UI) Draw(scr uv.Screen, area uv.Rectangle) {
	screen.Clear(scr)

	t := &m.com.Styles
	if !m.com.Fits(area, chromeRows) {
		msg := t.WindowTooSmall.Render("window too small")
		rect := common.CenterRect(area, lipgloss.Width(msg), 1)
		uv.NewStyledString(msg).Draw(scr, rect)
		return
	}

	header := uv.NewStyledString(common.Header(t, "picklist", m.layout.header.Dx()))
	header.Draw(scr, m.layout.header)

	m.host.Draw(scr, m.layout.main)

	status := uv.NewStyledString(common.StatusLine(t, m.statusFields(), m.layout.status.Dx()))
	status.Draw(scr, m.layout.status)

	helpView := uv.NewStyledString(m.help.View(m.keyMap))
	helpView.Draw(scr, m.layout.help)
}

func (m *UI) statusFields() []common.StatusField {
	lo, hi := m.list.Range()
	mode := "single"
	if m.pick.PickProperty().MultiPickable {
		mode = "multi"
	}
	fields := []common.StatusField{
		{Key: "window", Value: common.Range(lo, hi)},
		{Key: "picked", Value: fmt.Sprintf("%d/%d", m.pick.PickedCount(), m.pick.Count())},
		{Key: "mode", Value: mode},
	}
	if cur, ok := m.pick.Current().(*Entry); ok {
		fields = append(fields, common.StatusField{Key: "current", Value: cur.Name})
	}
	if m.event != "" {
		fields = append(fields, common.StatusField{Key: "last", Value: m.event})
	}
	if m.info != nil {
		fields = append(fields, common.StatusField{Key: "info", Value: m.info.Text, Alert: m.info.Alert()})
	}
	return fields
}

// View renders the UI model's view.
func (m *UI) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.BackgroundColor = m.com.Styles.Background
	v.MouseMode = tea.MouseModeCellMotion

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())

	content := strings.ReplaceAll(canvas.Render(), "\r\n", "\n") // normalize newlines
	contentLines := strings.Split(content, "\n")
	for i, line := range contentLines {
		// Trim trailing spaces for concise rendering
		contentLines[i] = strings.TrimRight(line, " ")
	}

	v.Content = strings.Join(contentLines, "\n")
	return v
}
