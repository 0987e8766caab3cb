// Package teaview hosts a vgraph.ViewGraph inside a bubbletea program.
//
// The graph renders into a cell buffer sized from tea.WindowSizeMsg; View
// turns the buffer into lipgloss-styled rows. Redraw requests raised by
// stateful nodes arrive as RedrawMsg through WaitForRedraw.
package teaview

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/vgraph"
)

// RedrawMsg tells the model a node asked for another frame.
type RedrawMsg struct{}

// WaitForRedraw blocks until g has a pending redraw request.
func WaitForRedraw(g *vgraph.ViewGraph) tea.Cmd {
	ch := g.Redraws()
	return func() tea.Msg {
		<-ch
		return RedrawMsg{}
	}
}

// KeyHandler is called for keys the model does not handle itself. It may
// update the graph (new root view, environment) and return a command.
type KeyHandler func(g *vgraph.ViewGraph, key tea.KeyMsg) tea.Cmd

// MsgHandler is called for messages other than keys, window sizes and
// redraws.
type MsgHandler func(g *vgraph.ViewGraph, msg tea.Msg) tea.Cmd

// Model is a tea.Model drawing a ViewGraph.
type Model struct {
	graph  *vgraph.ViewGraph
	buf    *vgraph.CellBuffer
	onKey  KeyHandler
	onMsg  MsgHandler
	width  int
	height int
}

// New creates a model for g with an initial size used until the first
// WindowSizeMsg arrives.
func New(g *vgraph.ViewGraph, width, height int) *Model {
	return &Model{
		graph:  g,
		buf:    vgraph.NewCellBuffer(width, height),
		width:  width,
		height: height,
	}
}

// OnKey installs the handler for unhandled keys.
func (m *Model) OnKey(h KeyHandler) *Model {
	m.onKey = h
	return m
}

// OnMsg installs the handler for other messages.
func (m *Model) OnMsg(h MsgHandler) *Model {
	m.onMsg = h
	return m
}

// Graph returns the hosted graph.
func (m *Model) Graph() *vgraph.ViewGraph { return m.graph }

// Buffer returns the buffer View renders into.
func (m *Model) Buffer() *vgraph.CellBuffer { return m.buf }

func (m *Model) Init() tea.Cmd {
	return WaitForRedraw(m.graph)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = max(0, msg.Width), max(0, msg.Height)
		m.buf.Resize(m.width, m.height)

	case RedrawMsg:
		m.graph.Refresh()
		return m, WaitForRedraw(m.graph)

	default:
		if m.onMsg != nil {
			return m, m.onMsg(m.graph, msg)
		}
	}
	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "tab":
		m.graph.FocusNext()
		return nil
	case "shift+tab":
		m.graph.FocusPrevious()
		return nil
	}
	if m.onKey != nil {
		return m.onKey(m.graph, key)
	}
	return nil
}

func (m *Model) View() string {
	m.graph.Render(m.buf)
	return Rows(m.buf)
}

// Rows renders buf as newline separated rows, one lipgloss style per run
// of cells sharing a style. Unstyled runs are written as plain text.
func Rows(buf *vgraph.CellBuffer) string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < buf.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var style vgraph.Style
		for x := 0; x < buf.Width(); x++ {
			c := buf.Cell(x, y)
			if c.IsContinuation() {
				continue
			}
			if c.Style != style && run.Len() > 0 {
				sb.WriteString(renderRun(run.String(), style))
				run.Reset()
			}
			style = c.Style
			run.WriteRune(c.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(renderRun(run.String(), style))
			run.Reset()
		}
	}
	return sb.String()
}

func renderRun(text string, s vgraph.Style) string {
	if s == (vgraph.Style{}) {
		return text
	}
	return Style(s).Render(text)
}

// Style maps a vgraph style onto lipgloss.
func Style(s vgraph.Style) lipgloss.Style {
	ls := lipgloss.NewStyle().
		Bold(s.Attr.Has(vgraph.AttrBold)).
		Faint(s.Attr.Has(vgraph.AttrDim)).
		Italic(s.Attr.Has(vgraph.AttrItalic)).
		Underline(s.Attr.Has(vgraph.AttrUnderline)).
		Reverse(s.Attr.Has(vgraph.AttrInverse)).
		Strikethrough(s.Attr.Has(vgraph.AttrStrikethrough))
	if c, ok := Color(s.FG); ok {
		ls = ls.Foreground(c)
	}
	if c, ok := Color(s.BG); ok {
		ls = ls.Background(c)
	}
	return ls
}

// Color maps a vgraph colour to a lipgloss colour; ok is false for the
// terminal default.
func Color(c vgraph.Color) (lipgloss.Color, bool) {
	switch c.Mode {
	case vgraph.Color16, vgraph.Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case vgraph.ColorRGB:
		return lipgloss.Color(c.String()), true
	}
	return "", false
}
