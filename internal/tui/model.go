// Package tui drives a snapshot session from the terminal with bubbletea.
//
// The model owns an input.Latch fed by key presses. Every refresh tick it
// hands the latch to the controller, which performs at most one queued
// action, then repaints. Clicks and the remaining keys act immediately.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"github.com/joeycumines/zombie-run/internal/app"
	"github.com/joeycumines/zombie-run/internal/input"
)

// DefaultRefresh is the default tick interval.
const DefaultRefresh = 120 * time.Millisecond

const minHistoryHeight = 3

type tickMsg time.Time

// Model is the bubbletea model of a session.
type Model struct {
	ctrl    *app.Controller
	latch   *input.Latch
	keys    keyMap
	help    help.Model
	view    viewport.Model
	zones   *zone.Manager
	prefix  string
	refresh time.Duration
	width   int
	height  int
}

// New returns a Model driving ctrl. Call Close once the program exits.
func New(ctrl *app.Controller, opts Options) Model {
	m := Model{
		ctrl:    ctrl,
		latch:   new(input.Latch),
		keys:    defaultKeyMap(),
		help:    help.New(),
		view:    viewport.New(80, 10),
		zones:   zone.New(),
		refresh: opts.Refresh,
	}
	if m.refresh <= 0 {
		m.refresh = DefaultRefresh
	}
	m.prefix = m.zones.NewPrefix()
	m.sync()
	return m
}

// Close releases the mouse zone tracker.
func (m Model) Close() {
	m.zones.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		// failures are logged by the controller and leave the session as is
		_ = m.ctrl.Update(m.latch)
		cmds = append(cmds, m.tick())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !m.handleKey(msg) {
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if !m.handleMouse(msg) {
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.latch.Press(input.ActionNext, true)
	case key.Matches(msg, m.keys.Prev):
		m.latch.Press(input.ActionPrev, true)
	case key.Matches(msg, m.keys.Capture):
		m.latch.Press(input.ActionCapture, true)
	case key.Matches(msg, m.keys.Restore):
		m.latch.Press(input.ActionRestore, true)
	case key.Matches(msg, m.keys.Remove):
		m.ctrl.RemoveAt(m.ctrl.Index())
	case key.Matches(msg, m.keys.NextProfile):
		m.cycleProfile(1)
	case key.Matches(msg, m.keys.PrevProfile):
		m.cycleProfile(-1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return false
	}
	return true
}

func (m *Model) cycleProfile(delta int) {
	n := len(m.ctrl.Locations())
	m.ctrl.SelectLocation(((m.ctrl.LocationIndex()+delta)%n + n) % n)
}

func (m *Model) handleMouse(msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return false
	}
	for i := range m.ctrl.Locations() {
		if m.zones.Get(m.zoneID("profile", i)).InBounds(msg) {
			m.ctrl.SelectLocation(i)
			return true
		}
	}
	h, ok := m.ctrl.History()
	if !ok {
		return false
	}
	for i := range h.Len() {
		switch {
		case m.zones.Get(m.zoneID("load", i)).InBounds(msg):
			_ = m.ctrl.RestoreAt(i)
		case m.zones.Get(m.zoneID("remove", i)).InBounds(msg):
			m.ctrl.RemoveAt(i)
		case m.zones.Get(m.zoneID("row", i)).InBounds(msg):
			m.ctrl.Goto(i)
		default:
			continue
		}
		return true
	}
	return false
}

func (m Model) zoneID(kind string, i int) string {
	return m.prefix + kind + "-" + strconv.Itoa(i)
}

// sync sizes the viewport around the header and footer, refreshes its
// content and scrolls the selected snapshot into view.
func (m *Model) sync() {
	if m.width > 0 {
		m.view.Width = m.width
	}
	if m.height > 0 {
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		m.view.Height = max(m.height-chrome, minHistoryHeight)
	}
	m.view.SetContent(m.history())

	h, ok := m.ctrl.History()
	if !ok || h.IsEmpty() {
		return
	}
	// newest first
	line := h.Len() - 1 - h.Index()
	switch {
	case line < m.view.YOffset:
		m.view.SetYOffset(line)
	case line >= m.view.YOffset+m.view.Height:
		m.view.SetYOffset(line - m.view.Height + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	return m.zones.Scan(m.header() + "\n" + m.view.View() + "\n" + m.footer())
}

func (m Model) header() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Zombie Run"))
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render("Profiles"))
	active := m.ctrl.LocationIndex()
	for i, loc := range m.ctrl.Locations() {
		line := "  " + loc.String()
		if i == active {
			line = activeStyle.Render("> " + loc.String())
		}
		b.WriteByte('\n')
		b.WriteString(m.zones.Mark(m.zoneID("profile", i), line))
	}
	count := 0
	if h, ok := m.ctrl.History(); ok {
		count = h.Len()
	}
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(fmt.Sprintf("History: %s (%d)", m.ctrl.Location().Game, count)))
	return b.String()
}

func (m Model) history() string {
	entries := m.ctrl.Entries()
	if len(entries) == 0 {
		return dimStyle.Render("No snapshots yet, press shift+n to save one.")
	}
	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		label := fmt.Sprintf("#[%02d] [%03d] - %s ago", e.Index, e.UID, app.FormatElapsed(e.Elapsed))
		marker := "  "
		if e.Selected {
			marker = "> "
			label = selectedStyle.Render(label)
		}
		row := m.zones.Mark(m.zoneID("row", e.Index), marker+label+"  "+dimStyle.Render(humanize.Bytes(uint64(e.Size))))
		load := m.zones.Mark(m.zoneID("load", e.Index), buttonStyle.Render("[load]"))
		remove := m.zones.Mark(m.zoneID("remove", e.Index), buttonStyle.Render("[remove]"))
		lines = append(lines, row+"  "+load+" "+remove)
	}
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	text, _ := m.ctrl.Message()
	return "\n" + messageStyle.Render(text) + "\n" + m.help.View(m.keys)
}
