package teaview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/kungfusheep/vgraph"
)

func TestRows(t *testing.T) {
	buf := vgraph.NewCellBuffer(5, 2)
	buf.WriteString(0, 0, "ab", vgraph.Style{}, 0)
	buf.WriteString(0, 1, "日x", vgraph.Style{}, 0)

	want := "ab   \n日x  "
	if got := Rows(buf); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRowsStyled(t *testing.T) {
	buf := vgraph.NewCellBuffer(4, 1)
	buf.WriteString(0, 0, "ok", vgraph.Style{FG: vgraph.Red, Attr: vgraph.AttrBold}, 0)

	got := Rows(buf)
	if plain := xansi.Strip(got); plain != "ok  " {
		t.Errorf("expected %q once styles are stripped, got %q", "ok  ", plain)
	}
	if !strings.HasSuffix(got, "  ") {
		t.Errorf("expected plain blanks after the styled run, got %q", got)
	}
	if w := lipgloss.Width(got); w != 4 {
		t.Errorf("expected display width 4, got %d", w)
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		in   vgraph.Color
		want lipgloss.Color
		ok   bool
	}{
		{"Default", vgraph.Color{}, "", false},
		{"Basic", vgraph.BrightCyan, "14", true},
		{"Palette", vgraph.PaletteColor(208), "208", true},
		{"RGB", vgraph.Hex(0x102030), "#102030", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Color(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Color(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestModel(t *testing.T) {
	g := vgraph.New()
	g.SetRootView(vgraph.VStack(
		vgraph.Text("one").Focusable(),
		vgraph.Text("two").Focusable(),
	))
	m := New(g, 6, 2)

	if got := m.View(); got != "one   \ntwo   " {
		t.Errorf("unexpected first view %q", got)
	}

	t.Run("Resize", func(t *testing.T) {
		m.Update(tea.WindowSizeMsg{Width: 4, Height: 3})
		if m.Buffer().Size() != (vgraph.Size{Width: 4, Height: 3}) {
			t.Fatalf("buffer not resized: %v", m.Buffer().Size())
		}
		if got := m.View(); got != "one \ntwo \n    " {
			t.Errorf("unexpected view after resize %q", got)
		}
	})

	t.Run("Tab", func(t *testing.T) {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.View()
		order := g.Focus().Focusables()
		if len(order) != 2 || !g.Focus().IsFocused(order[0]) {
			t.Errorf("tab should focus the first focusable, got %v", order)
		}
		if c := m.Buffer().Cell(0, 0); !c.Style.Attr.Has(vgraph.AttrBold) {
			t.Errorf("focused row should be bold, got %+v", c)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg")
		}
	})

	t.Run("OnKey", func(t *testing.T) {
		m.OnKey(func(g *vgraph.ViewGraph, key tea.KeyMsg) tea.Cmd {
			if key.String() == "x" {
				g.SetRootView(vgraph.Text("gone"))
			}
			return nil
		})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		if got := m.View(); !strings.HasPrefix(got, "gone") {
			t.Errorf("expected handler to swap the root view, got %q", got)
		}
	})
}

type recolor struct{ c vgraph.Color }

func TestOnMsg(t *testing.T) {
	g := vgraph.New()
	g.SetRootView(vgraph.Text("hi").Themed())
	m := New(g, 2, 1).OnMsg(func(g *vgraph.ViewGraph, msg tea.Msg) tea.Cmd {
		if r, ok := msg.(recolor); ok {
			g.UpdateEnvironment(g.Environment().With(vgraph.EnvForeground, r.c))
		}
		return nil
	})
	m.View()

	m.Update(recolor{vgraph.Green})
	m.View()
	if c := m.Buffer().Cell(0, 0); c.Style.FG != vgraph.Green {
		t.Errorf("expected the handler to recolour the text, got %+v", c)
	}
}

func TestRedraw(t *testing.T) {
	g := vgraph.New()
	g.SetRootView(vgraph.ViewFunc(func(ctx vgraph.RenderContext) *vgraph.RenderNode {
		n := vgraph.Value(ctx, "n", 0) + 1
		ctx.SetValue("n", n)
		if n == 1 {
			ctx.RequestRedraw()
		}
		return vgraph.Text(strings.Repeat("#", n)).RenderNode(ctx)
	}))
	m := New(g, 3, 1)
	if got := m.View(); got != "#  " {
		t.Fatalf("unexpected first view %q", got)
	}

	msg := m.Init()()
	if _, ok := msg.(RedrawMsg); !ok {
		t.Fatalf("expected RedrawMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Errorf("expected the model to keep waiting for redraws")
	}
	if got := m.View(); got != "## " {
		t.Errorf("expected a rebuilt frame, got %q", got)
	}
}
