package shell

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/regionav/internal/navigation"
)

// Renderable is the contract a view implements to be drawn by the
// shell. Views that do not implement it render as a placeholder.
type Renderable interface {
	Title() string
	Lines() []string
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleCrumb   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurrent = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Render draws the region's navigation stack and its current view.
// Layout: breadcrumb row, title row, content lines, key hints footer.
func Render(t *Terminal, region *navigation.Region) {
	t.Clear()

	_, height := t.Size()
	drawBreadcrumb(t, 0, region)

	row := 2
	if view, ok := region.CurrentView().(Renderable); ok {
		t.DrawText(0, row, styleTitle, view.Title())
		row += 2
		for _, line := range view.Lines() {
			if row >= height-1 {
				break
			}
			t.DrawText(2, row, styleDefault, line)
			row++
		}
	} else if region.Len() > 0 {
		t.DrawText(0, row, styleDefault, fmt.Sprintf("<%s>", region.CurrentName()))
	} else {
		t.DrawText(0, row, styleDefault, "(empty region)")
	}

	t.DrawText(0, height-1, styleHint, "←/→ back/forward  r restart  q quit")
	t.Show()
}

// drawBreadcrumb renders the stack as "a > [b] > c" with the current
// entry bracketed.
func drawBreadcrumb(t *Terminal, y int, region *navigation.Region) {
	names := region.StackNames()
	if len(names) == 0 {
		t.DrawText(0, y, styleCrumb, region.Name()+": (empty)")
		return
	}

	x := 0
	prefix := region.Name() + ": "
	t.DrawText(x, y, styleCrumb, prefix)
	x += len(prefix)

	current := region.CurrentIndex()
	for i, name := range names {
		if i > 0 {
			t.DrawText(x, y, styleCrumb, " > ")
			x += 3
		}
		if i == current {
			marked := "[" + name + "]"
			t.DrawText(x, y, styleCurrent, marked)
			x += len(marked)
		} else {
			t.DrawText(x, y, styleCrumb, name)
			x += len(name)
		}
	}
}

// ScreenLine reads row y from a simulation screen as a trimmed string.
// It is a test helper but lives here so integration tests outside the
// package can use it too.
func ScreenLine(t *Terminal, y int) string {
	sim, ok := t.Screen().(tcell.SimulationScreen)
	if !ok {
		return ""
	}
	cells, width, _ := sim.GetContents()

	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}
